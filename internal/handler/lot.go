package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/policy"
	"github.com/kindlot/charity-auction/internal/repository"
)

// LotHandler serves the lot listing endpoints.  Reads go through the
// visibility policy; a denied read and a missing lot produce byte-identical
// 404 responses so unprivileged users cannot probe which IDs exist.
type LotHandler struct {
	Lots *repository.LotRepo
}

func NewLotHandler(l *repository.LotRepo) *LotHandler {
	if l == nil {
		panic("nil repository passed to NewLotHandler")
	}
	return &LotHandler{Lots: l}
}

type lotReq struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	StartingPriceCents int64  `json:"starting_price_cents"`
}

type lotResp struct {
	ID                 uint64 `json:"id"`
	OwnerID            uint64 `json:"owner_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	StartingPriceCents int64  `json:"starting_price_cents"`
	CreatedAt          string `json:"created_at"`
}

func toLotResp(l model.Lot) lotResp {
	return lotResp{
		ID:                 l.ID,
		OwnerID:            l.OwnerID,
		Title:              l.Title,
		Description:        l.Description,
		Status:             string(l.Status),
		StartingPriceCents: l.StartingPriceCents,
		CreatedAt:          l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// lotNotFound is the single masked 404 used for absent AND denied lots.
// Both paths must stay byte-identical; see the policy package.
func lotNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "lot not found"})
}

// Create handles POST /v1/lots.  New lots always start PENDING and wait for
// moderation before appearing publicly.
func (h *LotHandler) Create(c echo.Context) error {
	v := currentViewer(c)
	var req lotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.StartingPriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lot := &model.Lot{
		OwnerID:            v.ID,
		Title:              req.Title,
		Description:        req.Description,
		StartingPriceCents: req.StartingPriceCents,
	}
	if err := h.Lots.Create(ctx, lot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create lot failed"})
	}
	created, err := h.Lots.GetByID(ctx, lot.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create lot failed"})
	}
	return c.JSON(http.StatusCreated, toLotResp(created))
}

// Get handles GET /v1/lots/:id.  The visibility policy decides whether the
// viewer may see the lot; a denial is reported exactly like an absent row.
func (h *LotHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return lotNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lot, err := h.Lots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return lotNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !policy.CanViewLot(&lot, currentViewer(c)) {
		return lotNotFound(c)
	}
	return c.JSON(http.StatusOK, toLotResp(lot))
}

// List handles GET /v1/lots.  Authenticated viewers see the approved
// listings; the ?status= filter for PENDING/REJECTED is honored only for
// moderators, and ?mine=true returns the donor's own lots in any status.
// The catalogue requires a login, matching the single-lot read policy.
func (h *LotHandler) List(c echo.Context) error {
	v := currentViewer(c)
	if !v.Authenticated() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if c.QueryParam("mine") == "true" {
		lots, err := h.Lots.ListByOwner(ctx, v.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusOK, lotsToResp(lots))
	}

	status := model.LotApproved
	if s := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); s != "" {
		st := model.LotStatus(s)
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		if st != model.LotApproved && !policy.CanModerateLot(v) {
			// Non-moderators cannot enumerate unapproved inventory.
			return c.JSON(http.StatusOK, lotsToResp(nil))
		}
		status = st
	}

	lots, err := h.Lots.ListByStatus(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, lotsToResp(lots))
}

func lotsToResp(lots []model.Lot) []lotResp {
	out := make([]lotResp, 0, len(lots))
	for _, l := range lots {
		out = append(out, toLotResp(l))
	}
	return out
}

// Update handles PUT /v1/lots/:id.  Only the owning donor (while the lot is
// pending) or an admin may edit; editing sends the lot back to moderation.
// Unauthorized edits get the same masked 404 as reads.
func (h *LotHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return lotNotFound(c)
	}
	var req lotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.StartingPriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := currentViewer(c)
	lot, err := h.Lots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return lotNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !policy.CanViewLot(&lot, v) {
		return lotNotFound(c)
	}
	if !policy.CanEditLot(&lot, v) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	lot.Title = req.Title
	lot.Description = req.Description
	lot.StartingPriceCents = req.StartingPriceCents
	if err := h.Lots.Update(ctx, &lot); err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return lotNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update lot failed"})
	}
	return c.JSON(http.StatusOK, toLotResp(lot))
}

// Delete handles DELETE /v1/lots/:id.  Owners may withdraw their own
// pending lots; everything else is masked as not found.
func (h *LotHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return lotNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := currentViewer(c)
	lot, err := h.Lots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return lotNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !policy.CanViewLot(&lot, v) {
		return lotNotFound(c)
	}
	if !policy.CanEditLot(&lot, v) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Lots.Delete(ctx, id, lot.OwnerID); err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return lotNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete lot failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
