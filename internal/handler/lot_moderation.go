package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/queue"
	"github.com/kindlot/charity-auction/internal/repository"
	"github.com/kindlot/charity-auction/internal/service"
)

// ModerationHandler serves the approve/reject endpoints.  Routes are gated
// to CHARITY and ADMIN by middleware; each decision publishes a
// LotModeratedEvent so the consumer can notify the donor.
type ModerationHandler struct {
	Lots *repository.LotRepo
}

func NewModerationHandler(l *repository.LotRepo) *ModerationHandler {
	return &ModerationHandler{Lots: l}
}

// Approve handles POST /v1/lots/:id/approve.
func (h *ModerationHandler) Approve(c echo.Context) error {
	return h.decide(c, model.LotApproved)
}

// Reject handles POST /v1/lots/:id/reject.
func (h *ModerationHandler) Reject(c echo.Context) error {
	return h.decide(c, model.LotRejected)
}

func (h *ModerationHandler) decide(c echo.Context, status model.LotStatus) error {
	id, ok := pathID(c)
	if !ok {
		return lotNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lots.SetStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, repository.ErrLotNotFound):
			return lotNotFound(c)
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "lot already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "moderation failed"})
	}

	lot, err := h.Lots.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "moderation failed"})
	}

	// Best-effort: a broker outage must not fail the moderation itself.
	_ = service.PublishLotModerated(ctx, queue.LotModeratedEvent{
		LotID:     lot.ID,
		OwnerID:   lot.OwnerID,
		Title:     lot.Title,
		Status:    string(lot.Status),
		DecidedBy: currentViewer(c).ID,
		DecidedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, toLotResp(lot))
}
