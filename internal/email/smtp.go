package email

import (
	"context"
	"fmt"
	"time"

	"alma_leads_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host          string
	port          int
	username      string
	password      string
	fromName      string
	fromEmail     string
	reviewerEmail string
}

// NewSMTPSender creates a new SMTPSender from email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:          cfg.GetSMTPHost(),
		port:          cfg.GetSMTPPort(),
		username:      cfg.GetSMTPUsername(),
		password:      cfg.GetSMTPPassword(),
		fromName:      cfg.GetEmailFromName(),
		fromEmail:     cfg.GetEmailFromAddress(),
		reviewerEmail: cfg.GetReviewerEmail(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendProspectConfirmation(ctx context.Context, toEmail, firstName string) error {
	content, err := renderEmailTemplate("prospect_confirmation.html", prospectConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "We received your submission",
			Heading: "Thank you for reaching out",
		},
		FirstName: firstName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectProspectConfirmation, content)
}

func (s *SMTPSender) SendReviewerAlert(ctx context.Context, leadID, firstName, lastName string) error {
	content, err := renderEmailTemplate("reviewer_alert.html", reviewerAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "New lead submitted",
			Heading: "A new lead is waiting for review",
		},
		LeadID:    leadID,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, s.reviewerEmail, subjectReviewerAlert, content)
}
