package infra

import (
	"fmt"
	"net/smtp"

	"unboxx/internal/config"

	"github.com/jordan-wright/email"
)

// Message is one outgoing mail. Attachment is a file path and may be empty.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string
}

// Mailer sends Messages through the configured SMTP relay, behind a circuit
// breaker so a dead relay fails fast instead of blocking workers.
type Mailer struct {
	host string
	from string
	addr string
	auth smtp.Auth
	cb   *CircuitBreaker
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config, cb *CircuitBreaker) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		host: cfg.SMTPHost,
		from: cfg.SMTPUser,
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		cb:   cb,
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

func (m *Mailer) Send(msg Message) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	if msg.Attachment != "" {
		if _, err := e.AttachFile(msg.Attachment); err != nil {
			return fmt.Errorf("mailer: attach: %w", err)
		}
	}
	return m.cb.Execute(func() error { return m.send(e, m.addr, m.auth) })
}
