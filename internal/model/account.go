package model

import "time"

// Account represents a user record as stored in the `users` table.  Email is
// the login identity (unique, stored lowercase); username is a secondary
// unique handle that defaults to the local part of the email when the client
// does not supply one.  The verification fields are populated only during
// onboarding and cleared once the email has been confirmed.
//
// Fields:
//  ID               – primary key identifier of the account.
//  Email            – unique, normalized email address (login key).
//  Username         – unique handle; defaulted from the email local part.
//  FirstName        – optional display name, used by charity provisioning.
//  PasswordHash     – bcrypt hashed password.
//  Role             – one of DONOR, BUYER, CHARITY, ADMIN.
//  IsActive         – whether the account may authenticate.
//  IsStaff          – staff flag; must be true for superusers.
//  IsSuperuser      – superuser flag; must be true for superusers.
//  IsEmailVerified  – whether the email has been confirmed.
//  VerificationCode – pending email-verification code (nullable).
//  VerificationExp  – expiry of the verification code (nullable).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Account struct {
	ID               uint64     // users.id
	Email            string     // users.email
	Username         string     // users.username
	FirstName        string     // users.first_name
	PasswordHash     string     // users.password_hash
	Role             Role       // users.role
	IsActive         bool       // users.is_active
	IsStaff          bool       // users.is_staff
	IsSuperuser      bool       // users.is_superuser
	IsEmailVerified  bool       // users.is_email_verified
	VerificationCode *string    // users.email_verification_code (nullable)
	VerificationExp  *time.Time // users.email_verification_expires (nullable)
	CreatedAt        time.Time  // users.created_at
	UpdatedAt        time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to an account; only the SHA-256 hash of the raw token is
// stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
