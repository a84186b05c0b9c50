package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type TokenSuite struct {
	suite.Suite
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenSuite))
}

func (s *TokenSuite) TestAccessTokenRoundTrip() {
	at, err := NewAccessToken("test-secret", 42, "DONOR", 15)
	s.Require().NoError(err)
	s.NotEmpty(at.Token)
	s.WithinDuration(time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	s.Require().NoError(err)
	s.Require().True(tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	s.Require().True(ok)
	s.Equal(float64(42), claims["sub"])
	s.Equal("DONOR", claims["role"])
}

func (s *TokenSuite) TestAccessTokenRejectsWrongSecret() {
	at, err := NewAccessToken("test-secret", 42, "BUYER", 15)
	s.Require().NoError(err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	s.Error(err)
}

func (s *TokenSuite) TestRefreshTokensAreUnique() {
	a, err := NewRefreshToken(30)
	s.Require().NoError(err)
	b, err := NewRefreshToken(30)
	s.Require().NoError(err)

	s.Len(a.Raw, 96)
	s.NotEqual(a.Raw, b.Raw)
	s.WithinDuration(time.Now().UTC().Add(30*24*time.Hour), a.Exp, 5*time.Second)
}

func (s *TokenSuite) TestHashRefreshRawIsStable() {
	h1 := HashRefreshRaw("some-raw-token")
	h2 := HashRefreshRaw("some-raw-token")
	s.Equal(h1, h2)
	s.Len(h1, 64)
	s.NotEqual(h1, HashRefreshRaw("another-token"))
}

func (s *TokenSuite) TestNewVerificationCode() {
	code, exp, err := NewVerificationCode(24 * time.Hour)
	s.Require().NoError(err)
	s.Len(code, 32)
	s.WithinDuration(time.Now().UTC().Add(24*time.Hour), exp, 5*time.Second)
}
