package middleware

// identity.go provides helpers for reading the authenticated identity that
// JWTAuth stored in the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/policy"
)

// ViewerFrom builds the policy viewer for the current request.  A request
// without a usable identity yields the zero Viewer, which the policy treats
// as unauthenticated.
func ViewerFrom(c echo.Context) policy.Viewer {
	var v policy.Viewer
	switch t := c.Get("user_id").(type) {
	case uint64:
		v.ID = t
	case int:
		v.ID = uint64(t)
	case int64:
		v.ID = uint64(t)
	case float64:
		// JWT numeric claims decode as float64.
		v.ID = uint64(t)
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			v.ID = n
		}
	}
	if s, ok := c.Get("role").(string); ok {
		v.Role = model.Role(s)
	}
	return v
}
