package repository

import (
	"context"
	"database/sql"

	"github.com/kindlot/charity-auction/internal/model"
)

// NotificationRepo owns the `notifications` table.  Rows are written by the
// event consumer (moderation decisions, auction outcomes) and only ever
// mutated to flip the read flag.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create stores an unread notification for the user.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, subject, message string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, subject, message, is_read) VALUES (?,?,?,0)",
		userID, subject, message)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, subject, message, is_read, sent_at
		   FROM notifications WHERE user_id=? ORDER BY sent_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Subject, &n.Message, &n.IsRead, &n.SentAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag on one of the user's notifications.  The
// user filter keeps accounts from marking each other's messages; a zero
// row count means "not yours or not there" and maps to sql.ErrNoRows.
// Marking an already-read notification is a no-op that still matches the
// row (clientFoundRows), so the call stays idempotent.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnreadCount returns how many unread notifications the user has.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id=? AND is_read=0", userID).Scan(&n)
	return n, err
}
