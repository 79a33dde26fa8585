package model

import "time"

// Engineer is a mechanic employed by a garage, stored in the
// `engineers` table.  Upstream clients historically send aliased
// field names for phone and specialty; those are normalized once at
// the handler boundary so this struct is fully determined.
//
// Fields:
//  ID        – CHAR(36) UUID primary key.
//  GarageID  – garage this engineer works for.
//  Name      – full name.
//  Phone     – contact number (normalized from phone/contact aliases).
//  Specialty – area of expertise (normalized from specialty/specialization).
//  IsActive  – whether the engineer can be assigned to new jobs.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Engineer struct {
	ID        string    `json:"id"`         // engineers.id
	GarageID  string    `json:"garage_id"`  // engineers.garage_id
	Name      string    `json:"name"`       // engineers.name
	Phone     string    `json:"phone"`      // engineers.phone
	Specialty string    `json:"specialty"`  // engineers.specialty
	IsActive  bool      `json:"is_active"`  // engineers.is_active
	CreatedAt time.Time `json:"created_at"` // engineers.created_at
	UpdatedAt time.Time `json:"updated_at"` // engineers.updated_at
}
