package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kindlot/charity-auction/internal/model"
)

// BalanceRepo is the ledger over the `balances` and `balance_entries`
// tables.  TopUp and Withdraw are the only ways the amount changes; both
// run as a single transaction around SELECT ... FOR UPDATE so that two
// concurrent requests against the same account cannot lose an update.
// Balance rows themselves are created only by provisioning (CreateTx).
type BalanceRepo struct{ DB *sql.DB }

func NewBalanceRepo(db *sql.DB) *BalanceRepo { return &BalanceRepo{DB: db} }

// CreateTx inserts the zero balance for a freshly created account inside
// the registration transaction.  The unique key on user_id makes a retried
// provisioning run fail with ErrDuplicateBalance instead of inserting a
// second row.
func (r *BalanceRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO balances (user_id, amount_cents) VALUES (?, 0)", userID)
	if err != nil {
		if isDuplicate(err, "uq_balances_user") {
			return ErrDuplicateBalance
		}
		return err
	}
	return nil
}

// Get returns the account's balance row.
func (r *BalanceRepo) Get(ctx context.Context, userID uint64) (model.Balance, error) {
	var b model.Balance
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, amount_cents, updated_at FROM balances WHERE user_id=? LIMIT 1",
		userID).Scan(&b.ID, &b.UserID, &b.AmountCents, &b.UpdatedAt)
	return b, err
}

// CheckFunds reports whether the current balance covers amountCents.  Pure
// read, no lock, no side effects.  A later Withdraw can still fail with
// ErrInsufficientFunds because another request may spend the funds in the
// window between the two calls.
func (r *BalanceRepo) CheckFunds(ctx context.Context, userID uint64, amountCents int64) (bool, error) {
	var current int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT amount_cents FROM balances WHERE user_id=? LIMIT 1",
		userID).Scan(&current)
	if err != nil {
		return false, err
	}
	return current >= amountCents, nil
}

// TopUp atomically adds amountCents to the account's balance and records a
// ledger entry.  Returns the new amount.  Fails with ErrInvalidAmount for
// non-positive amounts, leaving the balance untouched.
func (r *BalanceRepo) TopUp(ctx context.Context, userID uint64, amountCents int64, reference string) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	return r.apply(ctx, userID, amountCents, model.EntryTopUp, reference)
}

// Withdraw atomically subtracts amountCents from the account's balance and
// records a ledger entry.  Returns the new amount.  Fails with
// ErrInvalidAmount for non-positive amounts and ErrInsufficientFunds when
// the locked balance is too small; in both cases nothing is written.
func (r *BalanceRepo) Withdraw(ctx context.Context, userID uint64, amountCents int64, reference string) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	return r.apply(ctx, userID, -amountCents, model.EntryWithdraw, reference)
}

// apply is the shared locked read-modify-write.  delta is positive for
// top-ups and negative for withdrawals.
func (r *BalanceRepo) apply(ctx context.Context, userID uint64, delta int64, kind, reference string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Row lock: concurrent callers on the same account queue up here.
	var current int64
	err = tx.QueryRowContext(ctx,
		"SELECT amount_cents FROM balances WHERE user_id=? FOR UPDATE",
		userID).Scan(&current)
	if err != nil {
		return 0, err
	}
	next := current + delta
	if next < 0 {
		return 0, ErrInsufficientFunds
	}
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE balances SET amount_cents=?, updated_at=? WHERE user_id=?",
		next, now, userID); err != nil {
		return 0, err
	}
	amount := delta
	if amount < 0 {
		amount = -amount
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO balance_entries (user_id, kind, amount_cents, balance_after_cents, reference)
		 VALUES (?,?,?,?,?)`,
		userID, kind, amount, next, reference); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return next, nil
}

// History returns the account's ledger entries, newest first.
func (r *BalanceRepo) History(ctx context.Context, userID uint64, limit int) ([]model.BalanceEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, kind, amount_cents, balance_after_cents, reference, created_at
		   FROM balance_entries WHERE user_id=? ORDER BY id DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.BalanceEntry, 0, limit)
	for rows.Next() {
		var e model.BalanceEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.AmountCents,
			&e.BalanceAfterCents, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
