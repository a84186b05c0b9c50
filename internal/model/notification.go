package model

import "time"

// Notification is a per-user message produced by external event sources
// (lot moderation decisions, auction outcomes).  Records are created unread
// and only ever mutated to flip IsRead.
type Notification struct {
	ID      uint64    // notifications.id
	UserID  uint64    // notifications.user_id
	Subject string    // notifications.subject
	Message string    // notifications.message
	IsRead  bool      // notifications.is_read
	SentAt  time.Time // notifications.sent_at
}
