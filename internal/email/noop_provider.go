package email

import "jobsoko_backend/internal/logger"

// NoopProvider is used when SMTP is not configured (local development and
// tests). Mail is logged, not sent.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Info("email suppressed (noop provider)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	logger.Info("email suppressed (noop provider)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (p *NoopProvider) SendVerification(to, token string) error {
	logger.Info("verification email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopProvider) SendPasswordReset(to, token string) error {
	logger.Info("password reset email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopProvider) Close() error {
	return nil
}
