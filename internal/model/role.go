package model

// Role is the closed set of account roles.  Every account carries exactly
// one role at a time.  The values are stored verbatim in the users.role
// column and in the JWT "role" claim, so they must never be renamed without
// a migration.  Code that branches on a Role should switch over all four
// constants so that adding a role forces each policy site to be revisited.
type Role string

const (
	RoleDonor   Role = "DONOR"   // donates items ("lots") for auction
	RoleBuyer   Role = "BUYER"   // bids on and purchases lots
	RoleCharity Role = "CHARITY" // charitable organization receiving proceeds
	RoleAdmin   Role = "ADMIN"   // platform administrator
)

// ParseRole maps a raw string onto a Role.  Unknown or empty input yields
// RoleBuyer, the registration default, with ok=false so callers can tell a
// defaulted role from an explicit one.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDonor, RoleBuyer, RoleCharity, RoleAdmin:
		return Role(s), true
	}
	return RoleBuyer, false
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleBuyer, RoleCharity, RoleAdmin:
		return true
	}
	return false
}
