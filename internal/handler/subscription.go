package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/config"
	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/repository"
)

// SubscriptionHandler manages the single subscription window per account.
// Creating a subscription pays for it through the balance ledger, so the
// insufficient-funds path is the ledger's, not a duplicate check here.
type SubscriptionHandler struct {
	Cfg           config.Config
	Subscriptions *repository.SubscriptionRepo
	Balances      *repository.BalanceRepo
}

func NewSubscriptionHandler(cfg config.Config, s *repository.SubscriptionRepo, b *repository.BalanceRepo) *SubscriptionHandler {
	return &SubscriptionHandler{Cfg: cfg, Subscriptions: s, Balances: b}
}

type subscriptionResp struct {
	Active      bool   `json:"active"`
	StartsAt    string `json:"starts_at,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
	AutoRenewal bool   `json:"auto_renewal,omitempty"`
}

func toSubscriptionResp(s model.Subscription) subscriptionResp {
	return subscriptionResp{
		Active:      s.IsActive && s.EndsAt.After(time.Now().UTC()),
		StartsAt:    s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      s.EndsAt.UTC().Format(time.RFC3339),
		AutoRenewal: s.AutoRenewal,
	}
}

// Get handles GET /v1/subscription.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Subscriptions.GetByUserID(ctx, v.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, subscriptionResp{Active: false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toSubscriptionResp(s))
}

// Create handles POST /v1/subscription: checks funds, withdraws the fee and
// activates the window.  The check is advisory only; the withdraw can still
// fail with insufficient funds if a concurrent request drained the balance.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Balances.CheckFunds(ctx, v.ID, h.Cfg.SubscriptionFeeCents)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient funds"})
	}

	endsAt := time.Now().UTC().AddDate(0, 0, h.Cfg.SubscriptionDays)
	sub, err := h.Subscriptions.Activate(ctx, v.ID, endsAt)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionActive) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "subscription already active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "subscribe failed"})
	}

	if _, err := h.Balances.Withdraw(ctx, v.ID, h.Cfg.SubscriptionFeeCents, "subscription"); err != nil {
		// Lost the race between check and withdraw: roll the window back.
		_ = h.Subscriptions.Deactivate(ctx, v.ID)
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient funds"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "subscribe failed"})
	}

	return c.JSON(http.StatusCreated, toSubscriptionResp(sub))
}

// Cancel handles DELETE /v1/subscription.  Idempotent.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Subscriptions.Deactivate(ctx, v.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
