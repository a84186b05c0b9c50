package model

import "time"

// CharityProfile is the organizational profile attached to a charity-role
// account.  At most one profile exists per account; it is created by
// provisioning when a CHARITY account registers and deleted with the
// account.  RegNumber is the official registration number, unique across
// all profiles when set; provisioning leaves it null for the organization
// to fill in later.
type CharityProfile struct {
	ID          uint64    // charity_profiles.id
	UserID      uint64    // charity_profiles.user_id (unique)
	Name        string    // charity_profiles.name
	RegNumber   *string   // charity_profiles.reg_number (nullable, unique)
	Description string    // charity_profiles.description
	CreatedAt   time.Time // charity_profiles.created_at
}
