// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without parsing driver
// error strings, e.g. mapping ErrInsufficientFunds to a user-facing 400
// while ErrDuplicateBalance is logged as an internal provisioning bug.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is already
// taken.  Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when the chosen (or defaulted) username
// collides with an existing account.  Surfaced as HTTP 409; the default is
// never silently renamed.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidAmount is returned by the balance ledger when a non-positive
// amount is passed to TopUp or Withdraw.  Expected and user-recoverable.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds is returned by Withdraw when the locked balance is
// smaller than the requested amount.  Expected and user-recoverable.
// Callers of CheckFunds must still handle it because check-then-withdraw
// is not atomic as a pair.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrDuplicateBalance is returned when provisioning attempts to create a
// second balance for the same account.  Indicates a retry or programming
// bug; log internally, never show verbatim to end users.
var ErrDuplicateBalance = errors.New("balance already exists for account")

// ErrDuplicateCharityProfile is the charity-profile analogue of
// ErrDuplicateBalance.
var ErrDuplicateCharityProfile = errors.New("charity profile already exists for account")

// ErrRegNumberExists is returned when a charity registration number is
// already claimed by another profile.
var ErrRegNumberExists = errors.New("registration number already in use")

// ErrInvalidPrivilegeEscalation is returned when a superuser is created
// with either elevation flag explicitly set false.
var ErrInvalidPrivilegeEscalation = errors.New("superuser requires staff and superuser flags")

// ErrLotNotFound is returned for lots that are absent.  Handlers must emit
// the same 404 body for this error and for visibility denials so the two
// cases are indistinguishable to the client.
var ErrLotNotFound = errors.New("lot not found")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as moderating a lot that has already been
// decided.  Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSubscriptionActive is returned when creating a subscription while one
// is already active.  Handlers should translate this into HTTP 409.
var ErrSubscriptionActive = errors.New("subscription already active")

// ErrVerificationCode is returned when an email-verification code does not
// match or has expired.
var ErrVerificationCode = errors.New("invalid or expired verification code")
