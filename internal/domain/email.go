package domain

// Mailer sends an email with HTML and/or plain-text bodies.
// Implementations may use SES, SMTP, or a no-op for development.
type Mailer interface {
	Send(to, subject, html, text string) error
}
