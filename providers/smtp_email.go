package providers

import (
	"bytes"
	"strings"

	mail "github.com/wneessen/go-mail"
	"weatherreport.app/config"
	"weatherreport.app/pkg/errors"
)

// SMTPEmailProvider implements EmailProvider over SMTP submission. The TLS
// mode (STARTTLS or implicit TLS) is selected by configuration.
type SMTPEmailProvider struct {
	config *config.EmailConfig
}

// NewSMTPEmailProvider creates a new SMTP email provider
func NewSMTPEmailProvider(cfg *config.EmailConfig) *SMTPEmailProvider {
	return &SMTPEmailProvider{config: cfg}
}

// validateMessage validates the input parameters for sending an email
func (p *SMTPEmailProvider) validateMessage(msg EmailMessage) error {
	if msg.To == "" {
		return errors.NewValidationError("recipient email cannot be empty")
	}
	if msg.Subject == "" {
		return errors.NewValidationError("email subject cannot be empty")
	}
	return nil
}

// SendEmail sends a multipart message with plain-text and optional HTML
// bodies plus an optional binary attachment
func (p *SMTPEmailProvider) SendEmail(msg EmailMessage) error {
	if err := p.validateMessage(msg); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.FromFormat(p.config.FromName, p.config.FromAddress); err != nil {
		return errors.NewEmailError("invalid sender address", err)
	}
	if err := m.To(msg.To); err != nil {
		return errors.NewEmailError("invalid recipient address", err)
	}

	// Strip line breaks from the subject to prevent header injection
	m.Subject(strings.ReplaceAll(strings.ReplaceAll(msg.Subject, "\r\n", ""), "\n", ""))

	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}
	if msg.Attachment != nil {
		if err := m.AttachReader(msg.Attachment.Filename, bytes.NewReader(msg.Attachment.Content)); err != nil {
			return errors.NewEmailError("failed to attach file", err)
		}
	}

	client, err := p.newClient()
	if err != nil {
		return errors.NewEmailError("failed to create SMTP client", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return errors.NewEmailError("failed to send email", err)
	}

	return nil
}

func (p *SMTPEmailProvider) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(p.config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.config.SMTPUsername),
		mail.WithPassword(p.config.SMTPPassword),
	}

	if p.config.TLSMode == config.TLSModeImplicit {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	return mail.NewClient(p.config.SMTPHost, opts...)
}

var _ EmailProvider = (*SMTPEmailProvider)(nil)
