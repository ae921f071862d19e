package mailer

import (
	"fmt"
	"net/http"

	"github.com/SeakMengs/RenovaSite/internal/util"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer is used when no SendGrid key is configured, e.g. against a local mail catcher.
type SMTPMailer struct {
	fromEmail string
	host      string
	port      int
	username  string
	password  string
	logger    *zap.SugaredLogger
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string, logger *zap.SugaredLogger) *SMTPMailer {
	if logger == nil {
		logger = util.NewNopLogger()
	}

	return &SMTPMailer{
		fromEmail: fromEmail,
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		logger:    logger,
	}
}

func (sm *SMTPMailer) Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		sm.logger.Errorw("failed to render email template", "error", err, "templateFile", templateFile)
		return http.StatusInternalServerError, err
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", sm.fromEmail, FROM_NAME)
	message.SetAddressHeader("To", toEmail, toName)
	if cm, ok := data.(ContactMessageData); ok && cm.Email != "" {
		message.SetAddressHeader("Reply-To", cm.Email, cm.Name)
	}
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(sm.host, sm.port, sm.username, sm.password)

	if err := dialer.DialAndSend(message); err != nil {
		sm.logger.Errorw("failed to send email", "error", err, "toEmail", toEmail, "templateFile", templateFile)
		return http.StatusInternalServerError, fmt.Errorf("failed to send email: %w", err)
	}

	sm.logger.Infow("email sent successfully", "toEmail", toEmail, "templateFile", templateFile)

	return http.StatusOK, nil
}
