package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	BaseURL   string // public URL used in mail links
}

// SMTPProvider implements Provider over gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer *TemplateManager
}

func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.SSL = config.UseTLS

	return &SMTPProvider{
		config:   config,
		dialer:   dialer,
		renderer: NewTemplateManager(),
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", p.config.BaseURL, token)
	return p.SendTemplate([]string{to}, "Verify your JobSoko account", "verification", TemplateData{"Link": link})
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", p.config.BaseURL, token)
	return p.SendTemplate([]string{to}, "Reset your JobSoko password", "password_reset", TemplateData{"Link": link})
}

func (p *SMTPProvider) Close() error {
	return nil
}
