package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/repository"
)

// CharityHandler serves the charity directory.  Listing is public (and
// cached); the owning charity can read its own profile and fill in the
// registration number that provisioning left empty.
type CharityHandler struct {
	Charities *repository.CharityRepo
}

func NewCharityHandler(ch *repository.CharityRepo) *CharityHandler {
	return &CharityHandler{Charities: ch}
}

type charityResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	RegNumber   string `json:"reg_number,omitempty"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func toCharityResp(p model.CharityProfile) charityResp {
	out := charityResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.RegNumber != nil {
		out.RegNumber = *p.RegNumber
	}
	return out
}

// List handles GET /v1/charities (public, cacheable).
func (h *CharityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profiles, err := h.Charities.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]charityResp, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toCharityResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Mine handles GET /v1/me/charity for charity-role accounts.
func (h *CharityHandler) Mine(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Charities.GetByUserID(ctx, v.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "charity profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toCharityResp(p))
}

// SetRegNumber handles PUT /v1/me/charity/reg-number.
func (h *CharityHandler) SetRegNumber(c echo.Context) error {
	v := currentViewer(c)
	var req struct {
		RegNumber string `json:"reg_number"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RegNumber = strings.TrimSpace(req.RegNumber)
	if req.RegNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reg_number required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Charities.UpdateRegNumber(ctx, v.ID, req.RegNumber); err != nil {
		if err == repository.ErrRegNumberExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "registration number already in use"})
		}
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "charity profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
