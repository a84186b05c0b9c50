package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/config"
	"github.com/kindlot/charity-auction/internal/repository"
	"github.com/kindlot/charity-auction/internal/service"
)

// AdminHandler holds operator-only endpoints.  Routes are gated to ADMIN.
type AdminHandler struct {
	Cfg         config.Config
	Users       *repository.UserRepo
	Provisioner *service.Provisioner
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, p *service.Provisioner) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Provisioner: p}
}

// CreateSuperuser handles POST /v1/admin/superusers.  The role is forced to
// ADMIN; passing is_staff or is_superuser as false is rejected outright.
func (h *AdminHandler) CreateSuperuser(c echo.Context) error {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		IsStaff     *bool  `json:"is_staff"`
		IsSuperuser *bool  `json:"is_superuser"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if repository.NormalizeEmail(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Users.CreateSuperuser(ctx, req.Email, req.Password, h.Cfg.BcryptCost,
		repository.SuperuserFlags{IsStaff: req.IsStaff, IsSuperuser: req.IsSuperuser},
		h.Provisioner.ProvisionAccount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidPrivilegeEscalation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "superuser requires staff and superuser flags"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create superuser failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":    acc.ID,
		"email": acc.Email,
		"role":  acc.Role,
	})
}
