package notify

import (
	"context"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioNotifier struct {
	client *twilio.RestClient
	from   string
}

// NewTwilio builds an SMS notifier backed by the Twilio REST API.
func NewTwilio(accountSID, authToken, fromNumber string) Notifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioNotifier{client: client, from: fromNumber}
}

func (t *twilioNotifier) Send(ctx context.Context, phoneNumber, text string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(t.from)
	params.SetBody(text)
	_, err := t.client.Api.CreateMessage(params)
	return err
}
