package infra

import (
	"fmt"
	"net/smtp"

	"dayflow/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound account and workflow mail.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendVerification sends the account verification link. The link carries a
// single-use token that expires 24h after signup.
func (m *Mailer) SendVerification(to, link string) error {
	body := fmt.Sprintf(
		"Welcome to Dayflow!\n\nPlease verify your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours.",
		link,
	)
	return m.Send(to, "Verify your Dayflow account", body)
}
