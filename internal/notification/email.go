package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"taskpad/internal/credentials"
)

// Mailer sends one email message.
type Mailer interface {
	SendMail(to, subject, body string) error
}

// EmailConfig holds SMTP delivery settings. The password is not part of
// the config file; it is resolved through the credential manager.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	From     string
}

// SMTPMailer implements Mailer over net/smtp with PLAIN auth.
type SMTPMailer struct {
	config EmailConfig
	creds  *credentials.Manager
}

// NewSMTPMailer creates a mailer for the given SMTP settings.
func NewSMTPMailer(cfg EmailConfig, creds *credentials.Manager) *SMTPMailer {
	return &SMTPMailer{config: cfg, creds: creds}
}

// SendMail delivers one message to the address.
func (m *SMTPMailer) SendMail(to, subject, body string) error {
	password, _, err := m.creds.Get(m.config.Username)
	if err != nil {
		return fmt.Errorf("resolving smtp credential: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, password, m.config.Host)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// MockMailer records sent messages for testing.
type MockMailer struct {
	Sent []MockMessage
	Err  error
}

// MockMessage is one recorded SendMail call.
type MockMessage struct {
	To      string
	Subject string
	Body    string
}

// SendMail implements Mailer.
func (m *MockMailer) SendMail(to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, MockMessage{To: to, Subject: subject, Body: body})
	return nil
}
