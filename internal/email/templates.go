package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps parsed mail templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are static strings; a parse failure is a programming
		// error caught by the tests.
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"verification": `<html><body>
<h2>Welcome to JobSoko</h2>
<p>Confirm your email address to activate your account:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If you did not sign up, you can ignore this message.</p>
</body></html>`,

	"password_reset": `<html><body>
<h2>Password reset</h2>
<p>We received a request to reset your JobSoko password.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link expires in one hour. If you did not request a reset, ignore this message.</p>
</body></html>`,
}
