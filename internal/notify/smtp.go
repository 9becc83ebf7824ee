package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"snowglobe/internal/logging"
)

// SMTPNotifier sends messages through an SMTP relay.
type SMTPNotifier struct {
	Addr string // host:port
	From string
	Auth smtp.Auth

	now  func() time.Time
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP returns an SMTPNotifier. Username and password may be empty for an
// unauthenticated relay.
func NewSMTP(addr, from, username, password string) *SMTPNotifier {
	n := &SMTPNotifier{Addr: addr, From: from}
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		n.Auth = smtp.PlainAuth("", username, password, host)
	}
	return n
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	send := n.send
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(n.Addr, n.Auth, n.From, []string{msg.To}, n.compose(msg)); err != nil {
		return fmt.Errorf("notify: smtp send to %s: %w", msg.To, err)
	}
	logging.Logger().InfoContext(ctx, "notify: mail sent", "to", msg.To, "relay", n.Addr)
	return nil
}

func (n *SMTPNotifier) compose(msg Message) []byte {
	now := time.Now
	if n.now != nil {
		now = n.now
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.Write(bytes.ReplaceAll([]byte(msg.Body), []byte("\n"), []byte("\r\n")))
	return b.Bytes()
}
