package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kindlot/charity-auction/internal/model"
)

// SubscriptionRepo owns the `subscriptions` table.  The unique key on
// user_id limits every account to a single subscription window; creating a
// new one reactivates the existing row instead of inserting a second.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

func scanSubscription(row *sql.Row) (model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.IsActive, &s.StartsAt, &s.EndsAt, &s.AutoRenewal, &s.CreatedAt)
	return s, err
}

// GetByUserID returns the account's subscription row, sql.ErrNoRows when
// the account never subscribed.
func (r *SubscriptionRepo) GetByUserID(ctx context.Context, userID uint64) (model.Subscription, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, is_active, starts_at, ends_at, auto_renewal, created_at
		   FROM subscriptions WHERE user_id=? LIMIT 1`, userID)
	return scanSubscription(row)
}

// Activate creates the subscription window or reactivates a lapsed one.
// starts_at is written only on first creation; reactivation keeps it.
// An already-active, unexpired subscription is ErrSubscriptionActive.
func (r *SubscriptionRepo) Activate(ctx context.Context, userID uint64, endsAt time.Time) (model.Subscription, error) {
	now := time.Now().UTC()

	existing, err := r.GetByUserID(ctx, userID)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.DB.ExecContext(ctx,
			`INSERT INTO subscriptions (user_id, is_active, starts_at, ends_at, auto_renewal)
			 VALUES (?,?,?,?,?)`,
			userID, true, now, endsAt, true)
		if err != nil {
			if isDuplicate(err, "uq_subscriptions_user") {
				// Raced with another request for the same account.
				return model.Subscription{}, ErrSubscriptionActive
			}
			return model.Subscription{}, err
		}
	case err != nil:
		return model.Subscription{}, err
	default:
		if existing.IsActive && existing.EndsAt.After(now) {
			return model.Subscription{}, ErrSubscriptionActive
		}
		_, err = r.DB.ExecContext(ctx,
			"UPDATE subscriptions SET is_active=1, ends_at=?, auto_renewal=1 WHERE user_id=?",
			endsAt, userID)
		if err != nil {
			return model.Subscription{}, err
		}
	}
	return r.GetByUserID(ctx, userID)
}

// Deactivate cancels the subscription: clears the active and auto-renewal
// flags but keeps the row.  Idempotent; cancelling a missing or inactive
// subscription is not an error.
func (r *SubscriptionRepo) Deactivate(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE subscriptions SET is_active=0, auto_renewal=0 WHERE user_id=?", userID)
	return err
}
