package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/truest-construction/site-backend/config"
	"github.com/truest-construction/site-backend/metrics"
	"github.com/truest-construction/site-backend/models"
	"golang.org/x/sync/errgroup"
)

const defaultNotifyTimeout = 20 * time.Second

// Channel delivers a new-submission alert over one medium.
type Channel interface {
	Name() string
	NotifyContactSubmission(ctx context.Context, siteName string, submission models.ContactSubmission) error
}

// EmailChannel alerts a list of inboxes through Resend.
type EmailChannel struct {
	Mailer     *ResendMailer
	Recipients []string
}

func (c EmailChannel) Name() string { return "email" }

func (c EmailChannel) NotifyContactSubmission(ctx context.Context, siteName string, submission models.ContactSubmission) error {
	_, err := c.Mailer.SendEmail(ctx, ContactSubmissionEmail(siteName, submission), c.Recipients)
	return err
}

// SMSChannel alerts one phone number through Twilio.
type SMSChannel struct {
	Texter *TwilioTexter
	To     string
}

func (c SMSChannel) Name() string { return "sms" }

func (c SMSChannel) NotifyContactSubmission(ctx context.Context, siteName string, submission models.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.Texter.SendSMS(c.To, ContactSubmissionSMS(siteName, submission))
	return err
}

// Notifier fans a contact submission out to every configured channel.
type Notifier struct {
	siteName string
	channels []Channel
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewNotifier(siteName string, logger zerolog.Logger, channels ...Channel) *Notifier {
	return &Notifier{
		siteName: siteName,
		channels: channels,
		timeout:  defaultNotifyTimeout,
		logger:   logger,
	}
}

// NotifierFromEnv enables each channel whose settings are present. Misconfigured channels are
// logged and skipped; a notifier with no channels does nothing.
func NotifierFromEnv(c map[string]string, logger zerolog.Logger) *Notifier {
	var channels []Channel

	if recipients := config.GetStrings(c, "NOTIFY_EMAILS"); len(recipients) > 0 {
		mailer, err := NewResendMailer(
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
			logger,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("email notifications disabled")
		} else {
			channels = append(channels, EmailChannel{Mailer: mailer, Recipients: recipients})
		}
	}

	if phone := config.GetString(c, "NOTIFY_PHONE", ""); phone != "" {
		texter, err := NewTwilioTexter(
			config.GetString(c, "TWILIO_ACCOUNT_SID", ""),
			config.GetString(c, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(c, "TWILIO_FROM_NUMBER", ""),
			logger,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("sms notifications disabled")
		} else {
			channels = append(channels, SMSChannel{Texter: texter, To: phone})
		}
	}

	return NewNotifier(config.GetString(c, "SITE_NAME", "Tru-Est Construction"), logger, channels...)
}

// Enabled reports whether any channel is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && len(n.channels) > 0
}

// NotifyContactSubmission sends to all channels concurrently. Every channel is attempted;
// the first failure is returned after all have finished.
func (n *Notifier) NotifyContactSubmission(ctx context.Context, submission models.ContactSubmission) error {
	if !n.Enabled() {
		return nil
	}

	var g errgroup.Group
	for _, channel := range n.channels {
		g.Go(func() error {
			if err := channel.NotifyContactSubmission(ctx, n.siteName, submission); err != nil {
				n.logger.Error().Err(err).
					Str("channel", channel.Name()).
					Str("submissionId", submission.ID.String()).
					Msg("contact notification failed")
				return fmt.Errorf("%s: %w", channel.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Dispatch notifies in the background under its own timeout, detached from any request.
// The returned channel is closed once delivery has finished.
func (n *Notifier) Dispatch(submission models.ContactSubmission) <-chan struct{} {
	done := make(chan struct{})
	if !n.Enabled() {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		err := n.NotifyContactSubmission(ctx, submission)
		metrics.RecordNotification(err)
		if err == nil {
			n.logger.Info().Str("submissionId", submission.ID.String()).Msg("contact notification sent")
		}
	}()
	return done
}

// ContactSubmissionEmail renders the alert email. Submitted text is escaped.
func ContactSubmissionEmail(siteName string, submission models.ContactSubmission) Email {
	phone := "Not provided"
	if submission.Phone != nil && *submission.Phone != "" {
		phone = *submission.Phone
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<h2>New contact form submission</h2>")
	fmt.Fprintf(&body, "<p><strong>Name:</strong> %s</p>", html.EscapeString(submission.Name))
	fmt.Fprintf(&body, "<p><strong>Email:</strong> %s</p>", html.EscapeString(submission.Email))
	fmt.Fprintf(&body, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(phone))
	fmt.Fprintf(&body, "<p><strong>Message:</strong></p><p>%s</p>",
		strings.ReplaceAll(html.EscapeString(submission.Message), "\n", "<br>"))

	return Email{
		Subject: fmt.Sprintf("[%s] New message from %s", siteName, submission.Name),
		Html:    body.String(),
		Text: fmt.Sprintf("New contact form submission\n\nName: %s\nEmail: %s\nPhone: %s\n\n%s",
			submission.Name, submission.Email, phone, submission.Message),
		ReplyTo: submission.Email,
	}
}

// ContactSubmissionSMS renders the short alert text.
func ContactSubmissionSMS(siteName string, submission models.ContactSubmission) string {
	return fmt.Sprintf("%s: new message from %s (%s): %s",
		siteName, submission.Name, submission.Email, submission.Message)
}
