// Package notification hands notifications to the delivery subsystem. The
// service only publishes; rendering templates and sending mail or push
// messages happen elsewhere.
package notification

import (
	"checkout/internal/core/ports"
)

// Message is the wire form of ports.Notification.
type Message struct {
	Event       string            `json:"event"`
	RecipientID string            `json:"recipient_id"`
	Template    string            `json:"template"`
	Subject     SubjectRef        `json:"subject"`
	Context     map[string]string `json:"context,omitempty"`
}

type SubjectRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func toMessage(n ports.Notification) Message {
	return Message{
		Event:       n.Event,
		RecipientID: n.RecipientID.String(),
		Template:    n.TemplateKey,
		Subject: SubjectRef{
			Kind: n.Subject.Kind().String(),
			ID:   n.Subject.ID().String(),
		},
		Context: n.Context,
	}
}
