// Package email delivers notification messages over SMTP, or logs them when
// no relay is configured.
package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/renztrending/backend/internal/application/notification"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends mail through an SMTP relay, upgrading to TLS when offered
type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     mail.Address
	now      func() time.Time
	logger   *zap.Logger
}

// NewSMTPMailer validates the relay settings
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("mail host is required")
	}
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("invalid mail from address: %w", err)
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		from:     *from,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Send delivers msg. The context deadline bounds the whole SMTP conversation.
func (m *SMTPMailer) Send(ctx context.Context, msg notification.Message) error {
	if len(msg.To) == 0 {
		return notification.ErrNoRecipients
	}
	body, err := m.build(msg)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.from.Address); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, to := range msg.To {
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", to, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	m.logger.Debug("SMTP message accepted", zap.String("relay", m.addr), zap.Int("recipients", len(msg.To)))
	return c.Quit()
}

// build renders a multipart/alternative message when both bodies are set
func (m *SMTPMailer) build(msg notification.Message) ([]byte, error) {
	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }

	header("From", m.from.String())
	header("To", strings.Join(msg.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", m.now().UTC().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")

	switch {
	case msg.HTML != "" && msg.Text != "":
		boundary, err := newBoundary()
		if err != nil {
			return nil, err
		}
		header("Content-Type", `multipart/alternative; boundary="`+boundary+`"`)
		buf.WriteString("\r\n")
		for _, part := range []struct{ ctype, body string }{
			{"text/plain", msg.Text},
			{"text/html", msg.HTML},
		} {
			fmt.Fprintf(&buf, "--%s\r\n", boundary)
			if err := writePart(&buf, part.ctype, part.body); err != nil {
				return nil, err
			}
		}
		fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	case msg.HTML != "":
		if err := writePart(&buf, "text/html", msg.HTML); err != nil {
			return nil, err
		}
	default:
		if err := writePart(&buf, "text/plain", msg.Text); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writePart(buf *bytes.Buffer, ctype, body string) error {
	fmt.Fprintf(buf, "Content-Type: %s; charset=utf-8\r\n", ctype)
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	qp := quotedprintable.NewWriter(buf)
	if _, err := qp.Write([]byte(body)); err != nil {
		return fmt.Errorf("encode mail body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return fmt.Errorf("encode mail body: %w", err)
	}
	buf.WriteString("\r\n")
	return nil
}

func newBoundary() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("mail boundary: %w", err)
	}
	return "renz-" + hex.EncodeToString(b), nil
}
