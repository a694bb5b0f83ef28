package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer implements Mailer over SMTP via gomail.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
	logger   *zap.Logger
}

func NewSMTPMailer(host string, port int, from, password string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   logger.Named("SMTPMailer"),
	}
}

func (s *SMTPMailer) SendPasswordReset(toEmail, resetLink string) error {
	html := fmt.Sprintf(`<h2>Password Reset</h2>
<p>Click the link below to reset your password. It will expire in 15 minutes.</p>
<a href="%s">%s</a>
<p>If you didn't request this, ignore the email.</p>`, resetLink, resetLink)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "ClassyShop - Password Reset Link")
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send password reset email", zap.String("toEmail", toEmail), zap.Error(err))
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	s.logger.Info("Password reset email sent", zap.String("toEmail", toEmail))
	return nil
}
