package service

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"weatherreport.app/models"
	"weatherreport.app/pkg/errors"
	"weatherreport.app/pkg/validation"
	"weatherreport.app/providers"
)

// PDF attachment filename used for every report email
const reportAttachmentName = "weather_report.pdf"

// EmailService assembles report emails and hands them to the transport
type EmailService struct {
	provider providers.EmailProvider
}

// NewEmailService creates a new email service with the specified provider
func NewEmailService(provider providers.EmailProvider) *EmailService {
	return &EmailService{provider: provider}
}

// SendReportEmail sends a report as a multipart email with a PDF attachment.
// A PDF rendering failure downgrades the message to text-only rather than
// blocking the send.
func (s *EmailService) SendReportEmail(to string, report models.Report, data models.NormalizedWeather) error {
	if to == "" {
		return errors.NewValidationError("recipient email cannot be empty")
	}
	if !validation.IsValidEmail(to) {
		return errors.NewValidationError("recipient email is not a valid address")
	}

	msg := providers.EmailMessage{
		To:       to,
		Subject:  fmt.Sprintf("Daily %s Weather Report", report.Location.Name),
		TextBody: textBody(report),
		HTMLBody: htmlBody(report),
	}

	if pdfContent, err := RenderReportPDF(report, data); err != nil {
		slog.Warn("failed to render report PDF, sending without attachment",
			"reportID", report.ID, "error", err)
	} else {
		msg.Attachment = &providers.Attachment{
			Filename: reportAttachmentName,
			Content:  pdfContent,
		}
	}

	return s.provider.SendEmail(msg)
}

func textBody(report models.Report) string {
	return "Please find the daily weather report attached as a PDF.\n\n" + report.BodyText
}

func htmlBody(report models.Report) string {
	var b strings.Builder
	b.WriteString("<p>Please find the daily weather report attached as a PDF.</p>")
	for _, line := range strings.Split(report.BodyText, "\n") {
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
