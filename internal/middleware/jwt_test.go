package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/utils"
)

const testSecret = "test-secret"

type AuthMiddlewareSuite struct {
	suite.Suite
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

// invoke runs the middleware chain against a GET request carrying the given
// Authorization header and returns the recorder plus the viewer seen by the
// innermost handler.
func (s *AuthMiddlewareSuite) invoke(authHeader string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, *echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	h := func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	s.Require().NoError(h(c))
	if seen == nil {
		return rec, nil
	}
	return rec, &seen
}

func (s *AuthMiddlewareSuite) bearer(userID uint64, role model.Role) string {
	at, err := utils.NewAccessToken(testSecret, userID, string(role), 5)
	s.Require().NoError(err)
	return "Bearer " + at.Token
}

func (s *AuthMiddlewareSuite) TestJWTAuthAcceptsValidToken() {
	rec, seen := s.invoke(s.bearer(7, model.RoleDonor), JWTAuth(testSecret))
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)

	v := ViewerFrom(*seen)
	s.Equal(uint64(7), v.ID)
	s.Equal(model.RoleDonor, v.Role)
}

func (s *AuthMiddlewareSuite) TestJWTAuthRejectsMissingHeader() {
	rec, seen := s.invoke("", JWTAuth(testSecret))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Nil(seen)
}

func (s *AuthMiddlewareSuite) TestJWTAuthRejectsWrongSecret() {
	at, err := utils.NewAccessToken("other-secret", 7, "DONOR", 5)
	s.Require().NoError(err)

	rec, seen := s.invoke("Bearer "+at.Token, JWTAuth(testSecret))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Nil(seen)
}

func (s *AuthMiddlewareSuite) TestJWTOptionalPassesAnonymous() {
	rec, seen := s.invoke("", JWTOptional(testSecret))
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.False(ViewerFrom(*seen).Authenticated())
}

func (s *AuthMiddlewareSuite) TestJWTOptionalIgnoresBadToken() {
	rec, seen := s.invoke("Bearer not-a-token", JWTOptional(testSecret))
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.False(ViewerFrom(*seen).Authenticated())
}

func (s *AuthMiddlewareSuite) TestJWTOptionalReadsValidToken() {
	rec, seen := s.invoke(s.bearer(9, model.RoleBuyer), JWTOptional(testSecret))
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)

	v := ViewerFrom(*seen)
	s.Equal(uint64(9), v.ID)
	s.Equal(model.RoleBuyer, v.Role)
}

func (s *AuthMiddlewareSuite) TestRequireRole() {
	s.Run("allowed role passes", func() {
		rec, _ := s.invoke(s.bearer(1, model.RoleCharity),
			JWTAuth(testSecret), RequireRole(model.RoleCharity, model.RoleAdmin))
		s.Equal(http.StatusOK, rec.Code)
	})
	s.Run("disallowed role forbidden", func() {
		rec, seen := s.invoke(s.bearer(1, model.RoleBuyer),
			JWTAuth(testSecret), RequireRole(model.RoleCharity, model.RoleAdmin))
		s.Equal(http.StatusForbidden, rec.Code)
		s.Nil(seen)
	})
	s.Run("missing role forbidden", func() {
		rec, seen := s.invoke("", RequireRole(model.RoleAdmin))
		s.Equal(http.StatusForbidden, rec.Code)
		s.Nil(seen)
	})
}
