package model

import "time"

// Subscription is the single subscription window per account (unique key on
// user_id).  EndsAt is meaningful only while IsActive is true; cancelling
// clears both IsActive and AutoRenewal but keeps the row so the window can
// be reactivated.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning account (unique).
//  IsActive    – whether the subscription is currently active.
//  StartsAt    – set once when the subscription is first created.
//  EndsAt      – end of the paid window.
//  AutoRenewal – whether the window renews automatically.
//  CreatedAt   – timestamp of creation.
type Subscription struct {
	ID          uint64    // subscriptions.id
	UserID      uint64    // subscriptions.user_id
	IsActive    bool      // subscriptions.is_active
	StartsAt    time.Time // subscriptions.starts_at
	EndsAt      time.Time // subscriptions.ends_at
	AutoRenewal bool      // subscriptions.auto_renewal
	CreatedAt   time.Time // subscriptions.created_at
}
