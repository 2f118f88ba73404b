// Package notify sends the site owner a short email whenever someone
// subscribes. Notification failures are logged and swallowed: a signup
// must never fail because the courtesy email did.
package notify

import (
	"anxonews-server/internal/clients/mail"
	"anxonews-server/internal/observability"
	"context"
	"fmt"
	"html"
	"time"
)

const sendTimeout = 10 * time.Second

// Notifier sends owner notifications for new subscribers.
type Notifier struct {
	sender mail.Sender
	from   string
	to     string
	logger *observability.Logger
}

// New creates a Notifier. A nil sender disables notifications.
func New(sender mail.Sender, from, to string, logger *observability.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger,
	}
}

// Enabled reports whether notifications are configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && n.from != "" && n.to != ""
}

// SubscriberCreated notifies the owner about a new subscriber. It runs
// with its own timeout so it can be called from a goroutine after the
// request context is gone.
func (n *Notifier) SubscriberCreated(ctx context.Context, email, name string) {
	if !n.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	subject := "Nuevo suscriptor en la newsletter"
	body := fmt.Sprintf("<p>Nuevo suscriptor: <strong>%s</strong></p>", html.EscapeString(email))
	if name != "" {
		body += fmt.Sprintf("<p>Nombre: %s</p>", html.EscapeString(name))
	}

	if _, err := n.sender.SendEmail(ctx, n.from, n.to, subject, body); err != nil {
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "email_masked", Value: observability.MaskEmail(email)},
		)
		n.logger.Error(ctx, "failed to send owner notification", err)
	}
}
