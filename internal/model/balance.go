package model

import "time"

// Balance is the single monetary account attached to a user.  Exactly one
// row exists per user (unique key on user_id), created by provisioning at
// registration time.  Amounts are integer cents of a two-fraction-digit
// currency; the amount never goes below zero and changes only through the
// ledger's TopUp/Withdraw operations.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning account (unique).
//  AmountCents – current balance in cents, always >= 0.
//  UpdatedAt   – timestamp of the last ledger operation.
type Balance struct {
	ID          uint64    // balances.id
	UserID      uint64    // balances.user_id
	AmountCents int64     // balances.amount_cents
	UpdatedAt   time.Time // balances.updated_at
}

// Ledger entry kinds as stored in balance_entries.kind.
const (
	EntryTopUp    = "TOPUP"
	EntryWithdraw = "WITHDRAW"
)

// BalanceEntry records one successful ledger operation for auditing and the
// balance history endpoint.  BalanceAfterCents snapshots the balance at the
// moment the entry was written.
type BalanceEntry struct {
	ID                uint64    // balance_entries.id
	UserID            uint64    // balance_entries.user_id
	Kind              string    // balance_entries.kind (TOPUP | WITHDRAW)
	AmountCents       int64     // balance_entries.amount_cents
	BalanceAfterCents int64     // balance_entries.balance_after_cents
	Reference         string    // balance_entries.reference (free-form, e.g. "subscription")
	CreatedAt         time.Time // balance_entries.created_at
}
