package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/codearena/auth-api/internal/config"
)

// Mailer sends account emails. The OTP issuance path treats delivery as
// fire-and-forget; failures are logged by the caller, never surfaced to the
// registrant.
type Mailer interface {
	SendOtpRegisterAccount(toEmail, otpCode string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendOtpRegisterAccount(toEmail, otpCode string) error {
	subject := "Confirm your CodeArena account"
	body := fmt.Sprintf("Your verification code is: %s\r\n\r\nIt expires in 10 minutes.", otpCode)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{toEmail}, []byte(msg))
}
