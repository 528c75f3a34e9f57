package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioChannel sends WhatsApp messages through Twilio's messaging API.
type TwilioChannel struct {
	client *twilio.RestClient
	from   string // e.g. "whatsapp:+14155238886"
}

// NewTwilioChannel builds the channel from injected credentials. The HTTP
// timeout keeps a dead network from stalling the poll loop.
func NewTwilioChannel(accountSID, authToken, from string) *TwilioChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.SetTimeout(15 * time.Second)
	return &TwilioChannel{client: client, from: from}
}

func (t *TwilioChannel) Send(ctx context.Context, toPhone, body string) (bool, string) {
	if err := ctx.Err(); err != nil {
		return false, "Send cancelled: " + err.Error()
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo("whatsapp:" + toPhone)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		detail := classifySendError(toPhone, err)
		log.Printf("notify: whatsapp send to %s failed: %s", toPhone, detail)
		return false, detail
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	return true, "Message sent successfully! SID: " + sid
}

// classifySendError maps the provider's error codes onto the few causes a
// user can actually act on.
func classifySendError(toPhone string, err error) string {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		switch restErr.Code {
		case 20003:
			return "Authentication failed. Check your Twilio account SID and auth token."
		case 21608:
			return fmt.Sprintf("Phone number %s is not verified. Join the WhatsApp sandbox first.", toPhone)
		case 21211:
			return fmt.Sprintf("Invalid phone number: %s. Must include country code (e.g. +919876543210).", toPhone)
		}
	}
	return "Error: " + err.Error()
}
