package mailer

import (
	"html"
	"testing"

	"github.com/SeakMengs/RenovaSite/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContactMessage(t *testing.T) {
	subject, body, err := render(TemplateContactMessage, ContactMessageData{
		CompanyName: "Reformas Sur",
		Name:        "Lucía",
		Email:       "lucia@example.com",
		Phone:       "+34 600 000 000",
		Message:     "Quiero presupuesto para <baño>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nuevo mensaje de contacto de Lucía", subject)
	assert.Contains(t, body, "lucia@example.com")
	// html/template escapes "+" as &#43;
	assert.Contains(t, body, "&#43;34 600 000 000")
	assert.Contains(t, html.UnescapeString(body), "+34 600 000 000")
	assert.Contains(t, body, "Reformas Sur")
	// user input is escaped
	assert.Contains(t, body, "&lt;baño&gt;")
}

func TestRenderOmitsEmptyPhone(t *testing.T) {
	_, body, err := render(TemplateContactMessage, ContactMessageData{Name: "Ana", Email: "ana@example.com", Message: "Hola"})
	require.NoError(t, err)
	assert.NotContains(t, body, "Teléfono")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := render(MailTemplateFile("missing.tmpl"), nil)
	assert.Error(t, err)
}

func TestNewPicksTransport(t *testing.T) {
	assert.Nil(t, New(config.MailConfig{}, false, nil))

	smtp := New(config.MailConfig{SMTP: config.SMTPConfig{HOST: "localhost", PORT: 1025}}, false, nil)
	assert.IsType(t, &SMTPMailer{}, smtp)

	sg := New(config.MailConfig{
		SEND_GRID: config.SendGridConfig{API_KEY: "key"},
		SMTP:      config.SMTPConfig{HOST: "localhost"},
	}, false, nil)
	assert.IsType(t, &SendGridMailer{}, sg)
}
