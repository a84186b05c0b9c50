package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/handler"
	"github.com/kindlot/charity-auction/internal/middleware"
	"github.com/kindlot/charity-auction/internal/model"
)

// RegisterAdmin registers endpoints reserved for administrators.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	// Superusers are created explicitly rather than through public
	// registration, mirroring a createsuperuser management command.
	g.POST("/superusers", h.CreateSuperuser)
}
