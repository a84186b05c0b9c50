//go:build integration

package handler_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/kindlot/charity-auction/internal/handler"
	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/repository"
	"github.com/kindlot/charity-auction/internal/router"
	"github.com/kindlot/charity-auction/internal/service"
	"github.com/kindlot/charity-auction/internal/utils"
)

const testJWTSecret = "lot-visibility-test-secret"

// LotVisibilityHTTPSuite drives the lot read endpoints over HTTP against a
// real database.  It exists to pin the masking property: a hidden lot and a
// missing lot must be indistinguishable on the wire.
type LotVisibilityHTTPSuite struct {
	suite.Suite
	db       *sql.DB
	users    *repository.UserRepo
	balances *repository.BalanceRepo
	lots     *repository.LotRepo
	e        *echo.Echo
}

func TestLotVisibilityHTTPSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LotVisibilityHTTPSuite))
}

func (s *LotVisibilityHTTPSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		s.T().Skip("TEST_DB_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())

	s.db = db
	s.users = repository.NewUserRepo(db)
	s.balances = repository.NewBalanceRepo(db)
	s.lots = repository.NewLotRepo(db)

	s.e = echo.New()
	router.RegisterLots(s.e, handler.NewLotHandler(s.lots), handler.NewModerationHandler(s.lots), testJWTSecret)
}

func (s *LotVisibilityHTTPSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *LotVisibilityHTTPSuite) SetupTest() {
	ctx := context.Background()
	for _, table := range []string{"balance_entries", "balances", "lots", "users"} {
		_, err := s.db.ExecContext(ctx, "DELETE FROM "+table)
		s.Require().NoError(err)
	}
}

func (s *LotVisibilityHTTPSuite) newAccount(email string, role model.Role) model.Account {
	ctx := context.Background()
	acc := model.Account{Email: email, Role: role, IsActive: true}

	tx, err := s.db.BeginTx(ctx, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.users.CreateTx(ctx, tx, &acc, "test-password", 4))
	s.Require().NoError(tx.Commit())
	return acc
}

func (s *LotVisibilityHTTPSuite) get(path string, as *model.Account) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if as != nil {
		at, err := utils.NewAccessToken(testJWTSecret, as.ID, string(as.Role), 5)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+at.Token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *LotVisibilityHTTPSuite) TestPendingLotMasking() {
	ctx := context.Background()
	donor := s.newAccount("donor@example.org", model.RoleDonor)
	buyer := s.newAccount("buyer@example.org", model.RoleBuyer)
	charity := s.newAccount("contact@hope.org", model.RoleCharity)

	lot := model.Lot{OwnerID: donor.ID, Title: "Signed jersey", Description: "x", StartingPriceCents: 5000}
	s.Require().NoError(s.lots.Create(ctx, &lot))
	path := "/v1/lots/" + uintStr(lot.ID)

	s.Run("owner reads own pending lot", func() {
		s.Equal(http.StatusOK, s.get(path, &donor).Code)
	})
	s.Run("charity reviewer reads pending lot", func() {
		s.Equal(http.StatusOK, s.get(path, &charity).Code)
	})

	denied := s.get(path, &buyer)
	anonymous := s.get(path, nil)
	missing := s.get("/v1/lots/999999", &buyer)

	s.Run("buyer is denied with 404", func() {
		s.Equal(http.StatusNotFound, denied.Code)
	})
	s.Run("denied, anonymous and missing responses are byte-identical", func() {
		s.Equal(http.StatusNotFound, anonymous.Code)
		s.Equal(http.StatusNotFound, missing.Code)
		s.Equal(missing.Body.String(), denied.Body.String())
		s.Equal(missing.Body.String(), anonymous.Body.String())
	})
}

func (s *LotVisibilityHTTPSuite) TestApprovedLotVisibleToBuyers() {
	ctx := context.Background()
	donor := s.newAccount("donor@example.org", model.RoleDonor)
	buyer := s.newAccount("buyer@example.org", model.RoleBuyer)

	lot := model.Lot{OwnerID: donor.ID, Title: "Signed jersey", Description: "x", StartingPriceCents: 5000}
	s.Require().NoError(s.lots.Create(ctx, &lot))
	s.Require().NoError(s.lots.SetStatus(ctx, lot.ID, model.LotApproved))

	rec := s.get("/v1/lots/"+uintStr(lot.ID), &buyer)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Signed jersey")

	// Still masked for anonymous readers: the catalogue requires a login.
	s.Equal(http.StatusNotFound, s.get("/v1/lots/"+uintStr(lot.ID), nil).Code)
}

func (s *LotVisibilityHTTPSuite) TestListRequiresAuthentication() {
	ctx := context.Background()
	donor := s.newAccount("donor@example.org", model.RoleDonor)
	buyer := s.newAccount("buyer@example.org", model.RoleBuyer)

	lot := model.Lot{OwnerID: donor.ID, Title: "Signed jersey", Description: "x", StartingPriceCents: 5000}
	s.Require().NoError(s.lots.Create(ctx, &lot))
	s.Require().NoError(s.lots.SetStatus(ctx, lot.ID, model.LotApproved))

	s.Equal(http.StatusUnauthorized, s.get("/v1/lots", nil).Code)

	rec := s.get("/v1/lots", &buyer)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Signed jersey")
}

func uintStr(n uint64) string {
	return strconv.FormatUint(n, 10)
}
