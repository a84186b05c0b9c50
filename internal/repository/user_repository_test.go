package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "donor@example.org", NormalizeEmail("  Donor@Example.ORG "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestEmailLocalPart(t *testing.T) {
	require.Equal(t, "donor", EmailLocalPart("donor@example.org"))
	require.Equal(t, "a.b+c", EmailLocalPart("a.b+c@example.org"))
	// No "@" means the whole string is the local part.
	require.Equal(t, "donor", EmailLocalPart("donor"))
	// A leading "@" has no usable local part.
	require.Equal(t, "@example.org", EmailLocalPart("@example.org"))
}

func TestIsDuplicate(t *testing.T) {
	dup := errors.New(`Error 1062 (23000): Duplicate entry 'donor@example.org' for key 'users.uq_users_email'`)

	require.True(t, isDuplicate(dup, "uq_users_email"))
	require.True(t, isDuplicate(dup, ""))
	require.False(t, isDuplicate(dup, "uq_users_username"))
	require.False(t, isDuplicate(errors.New("connection refused"), "uq_users_email"))
	require.False(t, isDuplicate(nil, "uq_users_email"))

	// A duplicate value that happens to contain a column name must not
	// match the wrong key.
	sneaky := errors.New(`Error 1062 (23000): Duplicate entry 'email' for key 'users.uq_users_username'`)
	require.False(t, isDuplicate(sneaky, "uq_users_email"))
	require.True(t, isDuplicate(sneaky, "uq_users_username"))
}
