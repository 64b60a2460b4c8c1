package email

import (
	"context"

	"alma_leads_backend/platform/config"
	"alma_leads_backend/platform/logger"
)

// LogSender implements Sender by writing structured log lines instead
// of delivering mail. It is the default when no SMTP server is
// configured, which keeps local development and tests offline.
type LogSender struct {
	reviewerEmail string
	log           *logger.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(cfg config.EmailConfig, log *logger.Logger) *LogSender {
	return &LogSender{reviewerEmail: cfg.GetReviewerEmail(), log: log}
}

func (s *LogSender) SendProspectConfirmation(_ context.Context, toEmail, firstName string) error {
	s.log.Info("prospect confirmation email",
		"to", toEmail,
		"firstName", firstName,
	)
	return nil
}

func (s *LogSender) SendReviewerAlert(_ context.Context, leadID, firstName, lastName string) error {
	s.log.Info("reviewer alert email",
		"to", s.reviewerEmail,
		"leadId", leadID,
		"firstName", firstName,
		"lastName", lastName,
	)
	return nil
}
