// Package notification dispatches outbound notifications in response
// to domain events. Domain modules publish events and never talk to an
// email provider directly; delivery failures are logged here and never
// propagate back to the operation that raised the event.
package notification

import (
	"context"

	"alma_leads_backend/internal/email"
	"alma_leads_backend/internal/events"
	"alma_leads_backend/platform/logger"
)

// Module subscribes to domain events and sends notifications.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.onLeadCreated))
}

func (m *Module) onLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}

	m.handleLeadCreated(ctx, e)
	return nil
}

// handleLeadCreated sends the prospect confirmation first, then the
// reviewer alert. Both are best-effort: a failed send is logged and the
// other notification is still attempted.
func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) {
	if err := m.sender.SendProspectConfirmation(ctx, e.Email, e.FirstName); err != nil {
		m.log.NotificationError("prospect_confirmation", e.Email, err)
	}

	if err := m.sender.SendReviewerAlert(ctx, e.LeadID.String(), e.FirstName, e.LastName); err != nil {
		m.log.NotificationError("reviewer_alert", e.LeadID.String(), err)
	}
}
