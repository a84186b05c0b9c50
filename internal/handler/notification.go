package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/repository"
)

// NotificationHandler serves a user's notification feed.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, v.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type notifResp struct {
		ID      uint64 `json:"id"`
		Subject string `json:"subject"`
		Message string `json:"message"`
		IsRead  bool   `json:"is_read"`
		SentAt  string `json:"sent_at"`
	}
	out := make([]notifResp, 0, len(items))
	for _, n := range items {
		out = append(out, notifResp{
			ID:      n.ID,
			Subject: n.Subject,
			Message: n.Message,
			IsRead:  n.IsRead,
			SentAt:  n.SentAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead handles POST /v1/notifications/:id/read.  Marking another
// account's notification behaves like a missing one.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	v := currentViewer(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, v.ID, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
