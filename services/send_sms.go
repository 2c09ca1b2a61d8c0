package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/truest-construction/site-backend/errs"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsBodyLimit keeps notifications within a few SMS segments.
const smsBodyLimit = 480

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioTexter sends SMS through Twilio's Messages API.
type TwilioTexter struct {
	api    messageCreator
	from   string
	logger zerolog.Logger
}

func NewTwilioTexter(accountSID, authToken, from string, logger zerolog.Logger) (*TwilioTexter, error) {
	switch {
	case accountSID == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_ACCOUNT_SID")
	case authToken == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_AUTH_TOKEN")
	case from == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_FROM_NUMBER")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioTexter{api: client.Api, from: NormalizePhone(from), logger: logger}, nil
}

// SendSMS texts body to one number and returns the Twilio message sid.
func (t *TwilioTexter) SendSMS(to, body string) (string, error) {
	if len(body) > smsBodyLimit {
		body = body[:smsBodyLimit-3] + "..."
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(NormalizePhone(to))
	params.SetFrom(t.from)
	params.SetBody(body)

	message, err := t.api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return "", errs.NewProviderError("twilio", restErr.Status, restErr.Message)
		}
		return "", errs.NewNotificationError("twilio", err)
	}

	sid := ""
	if message != nil && message.Sid != nil {
		sid = *message.Sid
	}
	t.logger.Info().Str("messageSid", sid).Msg("Successfully sent SMS via Twilio")
	return sid, nil
}

// NormalizePhone strips formatting and assumes a US number when no country code is given.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	switch {
	case normalized == "":
		return ""
	case strings.HasPrefix(strings.TrimSpace(phone), "+"):
		return "+" + normalized
	case len(normalized) == 11 && strings.HasPrefix(normalized, "1"):
		return "+" + normalized
	case len(normalized) == 10:
		return "+1" + normalized
	}
	return fmt.Sprintf("+%s", normalized)
}
