// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into notifications.
package queue

import "encoding/json"

// Queue and event kind names.  All marketplace events travel through one
// durable queue wrapped in an Envelope, so a single consumer can fan them
// out to notifications.
const (
	EventsQueueName    = "marketplace.events"
	KindLotModerated   = "lot.moderated"
	KindAuctionOutcome = "auction.outcome"
)

// Envelope wraps every published event with its kind and a unique ID for
// idempotent downstream processing.
type Envelope struct {
	EventID string          `json:"event_id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// LotModeratedEvent is published when a charity or admin approves or
// rejects a lot.  It carries enough information for downstream consumers to
// notify the donor without querying the primary database.
type LotModeratedEvent struct {
	LotID     uint64 `json:"lot_id"`
	OwnerID   uint64 `json:"owner_id"`
	Title     string `json:"title"`
	Status    string `json:"status"` // APPROVED | REJECTED
	DecidedBy uint64 `json:"decided_by"`
	DecidedAt string `json:"decided_at"`
}

// AuctionOutcomeEvent arrives from the external settlement service when an
// auction concludes.  The consumer notifies both the winning buyer and the
// donating owner.
type AuctionOutcomeEvent struct {
	LotID           uint64 `json:"lot_id"`
	Title           string `json:"title"`
	OwnerID         uint64 `json:"owner_id"`
	WinnerID        uint64 `json:"winner_id"`
	FinalPriceCents int64  `json:"final_price_cents"`
	ConcludedAt     string `json:"concluded_at"`
}
