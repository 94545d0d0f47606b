package adapter

import (
	"errors"
	"fmt"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/helper"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrEmailNotConfigured = errors.New("SENDGRID_API_KEY is not configured")

type EmailAdapter struct {
	apiKey    string
	fromEmail string
	fromName  string
	sandbox   bool
}

func NewEmailAdapter(cfg *config.AppConfig) *EmailAdapter {
	return &EmailAdapter{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.SendGridFromEmail,
		fromName:  cfg.SendGridFromName,
		sandbox:   cfg.SendGridSandbox,
	}
}

// Send delivers a single transactional email. A missing API key is a hard
// configuration error raised here, not at startup.
func (e *EmailAdapter) Send(to string, subject string, plainText string, htmlBody string) error {
	if e.apiKey == "" {
		return ErrEmailNotConfigured
	}

	from := mail.NewEmail(e.fromName, e.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlBody)

	if e.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	client := sendgrid.NewSendClient(e.apiKey)

	operation := func() (struct{}, bool, error) {
		resp, err := client.Send(message)
		if err != nil {
			return struct{}{}, true, err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == 429 {
			return struct{}{}, true, fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return struct{}{}, false, fmt.Errorf("sendgrid rejected message with status %d: %s", resp.StatusCode, resp.Body)
		}
		return struct{}{}, false, nil
	}

	_, err := helper.RetryWithBackoff(operation, 3, 1*time.Second)
	return err
}
