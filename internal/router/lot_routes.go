package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/handler"
	"github.com/kindlot/charity-auction/internal/middleware"
	"github.com/kindlot/charity-auction/internal/model"
)

// RegisterLots registers the lot catalogue and moderation endpoints.
//
// Read endpoints use the optional JWT middleware instead of the strict one:
// the visibility decision belongs to the handler, which answers with the
// same "lot not found" 404 for a missing lot, a hidden lot and an anonymous
// request.  A strict middleware would leak existence through a 401.
func RegisterLots(e *echo.Echo, h *handler.LotHandler, m *handler.ModerationHandler, jwtSecret string) {
	read := e.Group("/v1", middleware.JWTOptional(jwtSecret))
	read.GET("/lots", h.List)
	read.GET("/lots/:id", h.Get)

	// Only donors put items up for auction.  Admins may create lots as well,
	// for example when listing on behalf of a donor over the phone.
	write := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)
	write.POST("/lots", h.Create, middleware.RequireRole(model.RoleDonor, model.RoleAdmin))
	// Update and delete are open to any authenticated role here; the handler
	// enforces ownership and the pending-only edit window.
	write.PUT("/lots/:id", h.Update)
	write.DELETE("/lots/:id", h.Delete)

	// Moderation decisions are reserved for charity accounts and admins.
	mod := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCharity, model.RoleAdmin),
	)
	mod.POST("/lots/:id/approve", m.Approve)
	mod.POST("/lots/:id/reject", m.Reject)
}
