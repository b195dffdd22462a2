package service

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type SMSService struct {
	from         string
	to           string
	testCellOnly string // If set, all texts go to this number (for testing)

	createFn func(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// NewSMSService creates a new SMS service backed by the Twilio REST API.
// Texts always go to the dispatcher's cell given here.
func NewSMSService(accountSID, authToken, from, to, testCellOnly string) (*SMSService, error) {
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		return nil, fmt.Errorf("twilio configuration incomplete")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &SMSService{
		from:         from,
		to:           to,
		testCellOnly: testCellOnly,
		createFn:     client.Api.CreateMessage,
	}, nil
}

// Send delivers body to the dispatcher's cell and returns the provider's
// message SID.
func (s *SMSService) Send(body string) (string, error) {
	// Override recipient for testing if TEST_CELL_PHONE is set
	actualRecipient := s.to
	if s.testCellOnly != "" {
		actualRecipient = s.testCellOnly
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(actualRecipient)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.createFn(params)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS to %s: %w", actualRecipient, err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	return sid, nil
}
