package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/model"
)

// RequireRole returns middleware that enforces that the authenticated user
// holds one of the given roles.  It assumes JWTAuth has already stored the
// "role" claim in the context.  Requests with a missing or disallowed role
// are rejected with 403.  Note that lot reads do NOT use this middleware:
// their denial must look like a 404 and is decided by the policy package
// inside the handler.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			s, ok := v.(string)
			if !ok || !allowed[model.Role(s)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
