package service

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CharityNameSuite struct {
	suite.Suite
}

func TestCharityNameSuite(t *testing.T) {
	suite.Run(t, new(CharityNameSuite))
}

func (s *CharityNameSuite) TestFallbackOrder() {
	s.Run("first name wins", func() {
		s.Equal("Charity Hope", CharityName("Hope", "hope-org", "contact@hope.org"))
	})
	s.Run("username when first name empty", func() {
		s.Equal("Charity hope-org", CharityName("", "hope-org", "contact@hope.org"))
	})
	s.Run("email local part as last resort", func() {
		s.Equal("Charity contact", CharityName("", "", "contact@hope.org"))
	})
	s.Run("email without an at sign used verbatim", func() {
		s.Equal("Charity contact", CharityName("", "", "contact"))
	})
}
