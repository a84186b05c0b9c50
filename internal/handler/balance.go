package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/repository"
)

// BalanceHandler exposes the ledger.  The balance is never written
// directly: top-up and withdraw are the only mutation endpoints, both
// backed by the repo's locked read-modify-write.
type BalanceHandler struct {
	Balances *repository.BalanceRepo
}

func NewBalanceHandler(b *repository.BalanceRepo) *BalanceHandler {
	return &BalanceHandler{Balances: b}
}

type amountReq struct {
	AmountCents int64 `json:"amount_cents"`
}

type balanceResp struct {
	AmountCents int64  `json:"amount_cents"`
	UpdatedAt   string `json:"updated_at"`
}

// Get handles GET /v1/balance.
func (h *BalanceHandler) Get(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Balances.Get(ctx, v.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, balanceResp{
		AmountCents: b.AmountCents,
		UpdatedAt:   b.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// TopUp handles POST /v1/balance/top-up.
func (h *BalanceHandler) TopUp(c echo.Context) error {
	v := currentViewer(c)
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	newAmount, err := h.Balances.TopUp(ctx, v.ID, req.AmountCents, "top-up")
	if err != nil {
		if errors.Is(err, repository.ErrInvalidAmount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "top-up failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"amount_cents": newAmount})
}

// Withdraw handles POST /v1/balance/withdraw.
func (h *BalanceHandler) Withdraw(c echo.Context) error {
	v := currentViewer(c)
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	newAmount, err := h.Balances.Withdraw(ctx, v.ID, req.AmountCents, "withdrawal")
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidAmount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
		case errors.Is(err, repository.ErrInsufficientFunds):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient funds"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "withdraw failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"amount_cents": newAmount})
}

// History handles GET /v1/balance/history.
func (h *BalanceHandler) History(c echo.Context) error {
	v := currentViewer(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Balances.History(ctx, v.ID, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type entryResp struct {
		Kind              string `json:"kind"`
		AmountCents       int64  `json:"amount_cents"`
		BalanceAfterCents int64  `json:"balance_after_cents"`
		Reference         string `json:"reference,omitempty"`
		CreatedAt         string `json:"created_at"`
	}
	out := make([]entryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResp{
			Kind:              e.Kind,
			AmountCents:       e.AmountCents,
			BalanceAfterCents: e.BalanceAfterCents,
			Reference:         e.Reference,
			CreatedAt:         e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}
