package email

import (
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
)

// Client sends transactional emails via Resend.
type Client struct {
	client    *resend.Client
	log       *logger.Logger
	fromEmail string
	fromName  string
	notifyTo  string
}

// NewClient returns a configured Resend client, or nil when the API key or
// sender address is missing. Callers treat a nil client as "email disabled".
func NewClient(log *logger.Logger, apiKey, fromEmail, fromName, notifyTo string) *Client {
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	if fromName == "" {
		fromName = "Tango CRM"
	}
	return &Client{
		client:    resend.NewClient(apiKey),
		log:       log.With("client", "ResendEmail"),
		fromEmail: fromEmail,
		fromName:  fromName,
		notifyTo:  notifyTo,
	}
}

// Send delivers one email.
func (c *Client) Send(toEmail, subject, htmlBody string) error {
	if c == nil {
		return fmt.Errorf("email client not configured")
	}
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlBody,
	}
	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	c.log.Info("Email sent", "to", toEmail, "subject", subject, "id", sent.Id)
	return nil
}

// NotifyContactForm forwards a marketing contact-form submission to the
// configured inbox.
func (c *Client) NotifyContactForm(name, fromEmail, subject, message string) error {
	if c == nil || c.notifyTo == "" {
		return fmt.Errorf("email client not configured")
	}
	if subject == "" {
		subject = "New contact form submission"
	}
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		name, fromEmail, message,
	)
	return c.Send(c.notifyTo, subject, body)
}
