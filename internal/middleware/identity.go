package middleware

// identity.go holds helpers shared across middleware files.  The cache
// and rate-limit key builders use userID to partition entries per
// authenticated user.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID extracts the authenticated user identifier from the request
// context.  JWT numeric claims decode as float64, so both forms are
// handled.  It returns "guest" on unauthenticated routes.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	}
	return "guest"
}
