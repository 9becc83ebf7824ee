// Package notify delivers share links to snow globe recipients.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"snowglobe/internal/logging"
	"snowglobe/internal/store"
)

// ErrHeaderInjection is returned for addresses or subjects containing line
// breaks.
var ErrHeaderInjection = errors.New("notify: line break in header field")

// Message is one outgoing notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

func (m Message) validate() error {
	if strings.ContainsAny(m.To, "\r\n") || strings.ContainsAny(m.Subject, "\r\n") {
		return ErrHeaderInjection
	}
	if m.To == "" {
		return fmt.Errorf("notify: empty recipient")
	}
	return nil
}

// Notifier sends a Message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error { return f(ctx, msg) }

// ShareMessage builds the notification for a stored submission.
func ShareMessage(sub *store.Submission, link string) Message {
	sender := sub.SenderName
	if sender == "" {
		sender = "Someone"
	}

	var b strings.Builder
	if sub.RecipientName != "" {
		fmt.Fprintf(&b, "Dear %s,\n\n", sub.RecipientName)
	}
	fmt.Fprintf(&b, "%s made you a snow globe.\n\n", sender)
	if sub.MessageText != "" {
		b.WriteString(sub.MessageText)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Open it here: %s\n", link)

	return Message{
		To:      sub.Email,
		Subject: fmt.Sprintf("%s sent you a snow globe", sender),
		Body:    b.String(),
	}
}

// LogNotifier writes messages to the package logger instead of sending them.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	logging.Logger().InfoContext(ctx, "notify: message", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
