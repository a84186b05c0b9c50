// Package policy contains pure access-control decisions.  Keeping them free
// of echo and database types lets handlers stay thin and the rules be tested
// exhaustively.
package policy

import "github.com/kindlot/charity-auction/internal/model"

// Viewer identifies the account making a read request.  A zero Viewer (ID 0)
// represents an unauthenticated request.
type Viewer struct {
	ID   uint64
	Role model.Role
}

// Authenticated reports whether the viewer is a logged-in account.
func (v Viewer) Authenticated() bool { return v.ID != 0 }

// CanViewLot decides whether the viewer may see the lot at all.  A false
// result must be reported to the client as "not found", never as
// "forbidden": pending lots are unapproved inventory, and a distinguishable
// denial would let non-privileged users enumerate which lot IDs exist.
//
// PENDING and REJECTED lots are visible only to the owning donor, to
// charity-role accounts and to admins.  APPROVED lots are visible to every
// authenticated viewer.
func CanViewLot(lot *model.Lot, v Viewer) bool {
	if !v.Authenticated() {
		return false
	}
	switch lot.Status {
	case model.LotApproved:
		return true
	case model.LotPending, model.LotRejected:
		if lot.OwnerID == v.ID {
			return true
		}
		// Exhaustive over roles: a new role must pick a branch here.
		switch v.Role {
		case model.RoleCharity, model.RoleAdmin:
			return true
		case model.RoleDonor, model.RoleBuyer:
			return false
		default:
			return false
		}
	default:
		// Unknown status is treated as unreviewed inventory.
		return lot.OwnerID == v.ID || v.Role == model.RoleAdmin
	}
}

// CanModerateLot reports whether the viewer may approve or reject lots.
func CanModerateLot(v Viewer) bool {
	return v.Role == model.RoleCharity || v.Role == model.RoleAdmin
}

// CanEditLot reports whether the viewer may update or withdraw the lot.
// Donors manage their own lots while still pending; admins may always edit.
func CanEditLot(lot *model.Lot, v Viewer) bool {
	if v.Role == model.RoleAdmin {
		return true
	}
	return lot.OwnerID == v.ID && lot.Status == model.LotPending
}
