package model

import "time"

// LotStatus is the moderation state of a lot.  New lots start PENDING and
// move to APPROVED or REJECTED when a charity or admin reviews them.  Only
// APPROVED lots appear in public listings.
type LotStatus string

const (
	LotPending  LotStatus = "PENDING"
	LotApproved LotStatus = "APPROVED"
	LotRejected LotStatus = "REJECTED"
)

// Valid reports whether s is a known lot status.
func (s LotStatus) Valid() bool {
	switch s {
	case LotPending, LotApproved, LotRejected:
		return true
	}
	return false
}

// Lot is an item donated for charity auction.  OwnerID references the donor
// account that listed it.  Visibility of a lot depends on its status and on
// the viewer's role; see the policy package.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – donor account that listed the lot.
//  Title              – short listing title.
//  Description        – free-text description of the item.
//  Status             – moderation state (PENDING, APPROVED, REJECTED).
//  StartingPriceCents – opening price in cents.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Lot struct {
	ID                 uint64    // lots.id
	OwnerID            uint64    // lots.owner_id
	Title              string    // lots.title
	Description        string    // lots.description
	Status             LotStatus // lots.status
	StartingPriceCents int64     // lots.starting_price_cents
	CreatedAt          time.Time // lots.created_at
	UpdatedAt          time.Time // lots.updated_at
}
