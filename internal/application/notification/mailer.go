// Package notification sends transactional email off the request path.
package notification

import (
	"context"
	"errors"
)

// ErrNoRecipients is returned when a message has nobody to go to
var ErrNoRecipients = errors.New("notification: message has no recipients")

// Message is one outbound email
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a message. Implementations live in the infrastructure layer.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Queue accepts messages for background delivery
type Queue interface {
	Enqueue(msg Message)
}
