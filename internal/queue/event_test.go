package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EnvelopeSuite struct {
	suite.Suite
}

func TestEnvelopeSuite(t *testing.T) {
	suite.Run(t, new(EnvelopeSuite))
}

func (s *EnvelopeSuite) TestEnvelopeCarriesPayloadVerbatim() {
	payload, err := json.Marshal(LotModeratedEvent{
		LotID:   7,
		OwnerID: 3,
		Title:   "Signed jersey",
		Status:  "APPROVED",
	})
	s.Require().NoError(err)

	env := Envelope{EventID: "evt-1", Kind: KindLotModerated, Payload: payload}
	body, err := json.Marshal(env)
	s.Require().NoError(err)

	var got Envelope
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal("evt-1", got.EventID)
	s.Equal(KindLotModerated, got.Kind)

	var ev LotModeratedEvent
	s.Require().NoError(json.Unmarshal(got.Payload, &ev))
	s.Equal(uint64(7), ev.LotID)
	s.Equal("APPROVED", ev.Status)
}

func (s *EnvelopeSuite) TestUnknownKindRejected() {
	body, err := json.Marshal(Envelope{EventID: "evt-2", Kind: "lot.vanished", Payload: []byte(`{}`)})
	s.Require().NoError(err)

	err = handleMessage(body, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown event kind")
}

func (s *EnvelopeSuite) TestMalformedEnvelopeRejected() {
	err := handleMessage([]byte("{not json"), nil)
	s.Error(err)
}

func TestNotificationTexts(t *testing.T) {
	t.Run("approved lot", func(t *testing.T) {
		subject, message := lotModeratedNotification(LotModeratedEvent{Title: "Signed jersey", Status: "APPROVED"})
		require.Equal(t, "Your lot was approved", subject)
		require.Contains(t, message, `"Signed jersey"`)
	})
	t.Run("rejected lot", func(t *testing.T) {
		subject, _ := lotModeratedNotification(LotModeratedEvent{Title: "Signed jersey", Status: "REJECTED"})
		require.Equal(t, "Your lot was rejected", subject)
	})
	t.Run("auction amounts render as decimal", func(t *testing.T) {
		_, message := auctionWonNotification(AuctionOutcomeEvent{Title: "Signed jersey", FinalPriceCents: 12345})
		require.Contains(t, message, "123.45")

		_, message = auctionSoldNotification(AuctionOutcomeEvent{Title: "Signed jersey", FinalPriceCents: 9905})
		require.Contains(t, message, "99.05")
	})
}
