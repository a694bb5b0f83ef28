package mailer

// Mailer defines the interface for sending storefront emails.
type Mailer interface {
	SendPasswordReset(toEmail, resetLink string) error
}
