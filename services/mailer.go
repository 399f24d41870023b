// services/mailer.go - Outbound verification/recovery email (best-effort)
package services

import (
	"fmt"
	"log"
	"net/smtp"

	"findteam/config"
)

// Mailer sends the verification and password-recovery links. Sends are
// best-effort: failures are logged and never fail the request that
// triggered them.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	baseURL  string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
		baseURL:  cfg.BaseURL,
	}
}

// SendVerification mails the email-confirmation link in a goroutine.
func (m *Mailer) SendVerification(email, token string) {
	link := fmt.Sprintf("%s/auth/verify/%s", m.baseURL, token)
	body := fmt.Sprintf("To confirm your email, follow the link: %s", link)
	go m.send(email, "Registration confirmation", body)
}

// SendPasswordReset mails the password-reset link in a goroutine.
func (m *Mailer) SendPasswordReset(email, token string) {
	link := fmt.Sprintf("%s/change_password/%s", m.baseURL, token)
	body := fmt.Sprintf(
		"If you did not ask to change your password, ignore this message.\n\n"+
			"To reset your password, follow the link: %s", link)
	go m.send(email, "Password reset", body)
}

func (m *Mailer) send(to, subject, body string) {
	if m.host == "" {
		log.Printf("mail disabled, skipping %q to %s", subject, to)
		return
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		log.Printf("failed to send %q to %s: %v", subject, to, err)
	}
}
