// Package notifier delivers the rendered digest through a transport chosen once
// at startup.
package notifier

import (
	"context"
	"errors"

	"dailyfeed/logger"
)

// ErrNoRecipient is reported when no recipient address is configured.
var ErrNoRecipient = errors.New("RECIPIENT_EMAIL not set")

// Message is one outgoing email.
type Message struct {
	Subject string
	HTML    string
	Text    string
	From    string
	To      string
}

// Transport hands a complete message to a delivery channel.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
	Name() string
}

// Notifier addresses messages and reports delivery as a boolean. It never
// returns an error to the caller.
type Notifier struct {
	transport Transport
	recipient string
	sender    string
	log       logger.Logger
}

// New returns a Notifier. An empty sender falls back to the recipient.
func New(transport Transport, recipient, sender string, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	if sender == "" {
		sender = recipient
	}
	return &Notifier{
		transport: transport,
		recipient: recipient,
		sender:    sender,
		log:       log,
	}
}

// Send delivers msg, filling in the configured addresses where msg leaves
// them empty.
func (n *Notifier) Send(ctx context.Context, msg Message) bool {
	if msg.To == "" {
		msg.To = n.recipient
	}
	if msg.From == "" {
		msg.From = n.sender
	}
	if msg.To == "" {
		n.log.Error("cannot send email", logger.Error(ErrNoRecipient))
		return false
	}

	log := n.log.With(
		logger.String("transport", n.transport.Name()),
		logger.String("subject", msg.Subject),
	)
	log.Info("sending email",
		logger.String("from", msg.From),
		logger.String("to", msg.To),
	)

	if err := n.transport.Deliver(ctx, msg); err != nil {
		log.Error("failed to send email", logger.Error(err))
		return false
	}
	return true
}
