package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"DONOR", "BUYER", "CHARITY", "ADMIN"} {
		r, ok := ParseRole(s)
		require.True(t, ok, s)
		require.Equal(t, Role(s), r)
	}

	// Unknown input defaults to buyer with ok=false.
	for _, s := range []string{"", "buyer", "OWNER", "SUPERUSER"} {
		r, ok := ParseRole(s)
		require.False(t, ok, s)
		require.Equal(t, RoleBuyer, r)
	}
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleDonor.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("").Valid())
	require.False(t, Role("donor").Valid())
}

func TestLotStatusValid(t *testing.T) {
	require.True(t, LotPending.Valid())
	require.True(t, LotApproved.Valid())
	require.True(t, LotRejected.Valid())
	require.False(t, LotStatus("ARCHIVED").Valid())
}
