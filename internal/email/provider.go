package email

// Email is one outbound message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData holds values substituted into mail templates.
type TemplateData map[string]interface{}

// Provider sends transactional mail. The core never depends on delivery —
// failures are logged and the triggering operation still succeeds.
type Provider interface {
	// Send delivers an already-rendered message.
	Send(email *Email) error

	// SendTemplate renders a named template and delivers it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// SendVerification sends the account verification mail.
	SendVerification(to, token string) error

	// SendPasswordReset sends the password reset mail.
	SendPasswordReset(to, token string) error

	Close() error
}
