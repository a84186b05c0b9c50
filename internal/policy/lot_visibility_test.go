package policy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kindlot/charity-auction/internal/model"
)

type LotVisibilitySuite struct {
	suite.Suite
}

func TestLotVisibilitySuite(t *testing.T) {
	suite.Run(t, new(LotVisibilitySuite))
}

func lot(owner uint64, status model.LotStatus) *model.Lot {
	return &model.Lot{ID: 42, OwnerID: owner, Status: status}
}

// TestPendingLot covers the masking matrix for an unreviewed lot owned by
// donor 7.
func (s *LotVisibilitySuite) TestPendingLot() {
	l := lot(7, model.LotPending)

	cases := []struct {
		name   string
		viewer Viewer
		want   bool
	}{
		{"owning donor sees own pending lot", Viewer{ID: 7, Role: model.RoleDonor}, true},
		{"other donor denied", Viewer{ID: 8, Role: model.RoleDonor}, false},
		{"buyer denied", Viewer{ID: 9, Role: model.RoleBuyer}, false},
		{"charity reviewer allowed", Viewer{ID: 10, Role: model.RoleCharity}, true},
		{"admin allowed", Viewer{ID: 11, Role: model.RoleAdmin}, true},
		{"anonymous denied", Viewer{}, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, CanViewLot(l, tc.viewer))
		})
	}
}

// TestRejectedLot verifies rejected lots stay as hidden as pending ones.
func (s *LotVisibilitySuite) TestRejectedLot() {
	l := lot(7, model.LotRejected)

	s.True(CanViewLot(l, Viewer{ID: 7, Role: model.RoleDonor}))
	s.True(CanViewLot(l, Viewer{ID: 10, Role: model.RoleCharity}))
	s.True(CanViewLot(l, Viewer{ID: 11, Role: model.RoleAdmin}))
	s.False(CanViewLot(l, Viewer{ID: 9, Role: model.RoleBuyer}))
	s.False(CanViewLot(l, Viewer{ID: 8, Role: model.RoleDonor}))
}

// TestApprovedLot verifies approved lots are visible to any authenticated
// account but never to anonymous requests.
func (s *LotVisibilitySuite) TestApprovedLot() {
	l := lot(7, model.LotApproved)

	for _, role := range []model.Role{model.RoleDonor, model.RoleBuyer, model.RoleCharity, model.RoleAdmin} {
		s.True(CanViewLot(l, Viewer{ID: 99, Role: role}), "role %s", role)
	}
	s.False(CanViewLot(l, Viewer{}))
}

// TestUnknownStatus treats unrecognized statuses like unreviewed inventory.
func (s *LotVisibilitySuite) TestUnknownStatus() {
	l := lot(7, model.LotStatus("ARCHIVED"))

	s.True(CanViewLot(l, Viewer{ID: 7, Role: model.RoleDonor}))
	s.True(CanViewLot(l, Viewer{ID: 11, Role: model.RoleAdmin}))
	s.False(CanViewLot(l, Viewer{ID: 10, Role: model.RoleCharity}))
	s.False(CanViewLot(l, Viewer{ID: 9, Role: model.RoleBuyer}))
}

func (s *LotVisibilitySuite) TestCanModerateLot() {
	s.True(CanModerateLot(Viewer{ID: 1, Role: model.RoleCharity}))
	s.True(CanModerateLot(Viewer{ID: 1, Role: model.RoleAdmin}))
	s.False(CanModerateLot(Viewer{ID: 1, Role: model.RoleDonor}))
	s.False(CanModerateLot(Viewer{ID: 1, Role: model.RoleBuyer}))
	s.False(CanModerateLot(Viewer{}))
}

func (s *LotVisibilitySuite) TestCanEditLot() {
	s.Run("owner edits while pending", func() {
		s.True(CanEditLot(lot(7, model.LotPending), Viewer{ID: 7, Role: model.RoleDonor}))
	})
	s.Run("owner locked out after approval", func() {
		s.False(CanEditLot(lot(7, model.LotApproved), Viewer{ID: 7, Role: model.RoleDonor}))
	})
	s.Run("owner locked out after rejection", func() {
		s.False(CanEditLot(lot(7, model.LotRejected), Viewer{ID: 7, Role: model.RoleDonor}))
	})
	s.Run("non-owner denied", func() {
		s.False(CanEditLot(lot(7, model.LotPending), Viewer{ID: 8, Role: model.RoleDonor}))
	})
	s.Run("admin edits regardless of status", func() {
		s.True(CanEditLot(lot(7, model.LotApproved), Viewer{ID: 11, Role: model.RoleAdmin}))
	})
}
