package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"go.uber.org/zap"
)

const (
	FROM_NAME = "Renova"
	MAX_RETRY = 3
)

type MailTemplateFile string

const (
	TemplateContactMessage MailTemplateFile = "contact_message.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error)
}

// Data for TemplateContactMessage.
type ContactMessageData struct {
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	SentAt      string `json:"sentAt"`
}

// render executes the "subject" and "body" blocks of an embedded template.
func render(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+string(templateFile))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse mail template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject of %s: %w", templateFile, err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to execute body of %s: %w", templateFile, err)
	}

	return subject.String(), body.String(), nil
}

// New picks SendGrid when an API key is set, SMTP when a host is set, and returns nil otherwise.
func New(cfg config.MailConfig, isProduction bool, logger *zap.SugaredLogger) Client {
	switch {
	case cfg.SEND_GRID.API_KEY != "":
		return NewSendgrid(cfg.SEND_GRID.API_KEY, cfg.FROM_EMAIL, isProduction, logger)
	case cfg.SMTP.HOST != "":
		return NewSMTPMailer(cfg.SMTP.HOST, cfg.SMTP.PORT, cfg.SMTP.USERNAME, cfg.SMTP.PASSWORD, cfg.FROM_EMAIL, logger)
	}
	return nil
}
