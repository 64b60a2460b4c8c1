// Package email provides the outbound notification senders for lead
// intake: a prospect confirmation and a reviewer alert. Delivery is
// best-effort; callers treat failures as observable but non-fatal.
package email

import (
	"context"

	"alma_leads_backend/platform/config"
	"alma_leads_backend/platform/logger"
)

// Sender delivers the two lead-intake notifications.
type Sender interface {
	// SendProspectConfirmation confirms to the prospect that their
	// submission was received.
	SendProspectConfirmation(ctx context.Context, toEmail, firstName string) error

	// SendReviewerAlert notifies the internal reviewer that a new lead
	// is waiting.
	SendReviewerAlert(ctx context.Context, leadID, firstName, lastName string) error
}

// NewSender selects the delivery mechanism from configuration: a real
// SMTP sender when email is enabled, otherwise a structured-log sender.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if cfg.GetEmailEnabled() {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(cfg, log)
}
