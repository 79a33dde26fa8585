package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineerReqAliases(t *testing.T) {
	tests := []struct {
		name          string
		req           engineerReq
		wantPhone     string
		wantSpecialty string
	}{
		{
			name:          "canonical fields",
			req:           engineerReq{Phone: "555-0101", Specialty: "engine"},
			wantPhone:     "555-0101",
			wantSpecialty: "engine",
		},
		{
			name:          "aliased fields",
			req:           engineerReq{Contact: "555-0102", Specialization: "transmission"},
			wantPhone:     "555-0102",
			wantSpecialty: "transmission",
		},
		{
			name:          "canonical wins over alias",
			req:           engineerReq{Phone: "555-0101", Contact: "555-0102", Specialty: "engine", Specialization: "transmission"},
			wantPhone:     "555-0101",
			wantSpecialty: "engine",
		},
		{
			name:          "whitespace-only canonical falls back",
			req:           engineerReq{Phone: "  ", Contact: "555-0103", Specialty: "\t", Specialization: "electrical"},
			wantPhone:     "555-0103",
			wantSpecialty: "electrical",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPhone, tt.req.phone())
			assert.Equal(t, tt.wantSpecialty, tt.req.specialty())
		})
	}
}
