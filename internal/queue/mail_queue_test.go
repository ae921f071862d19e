package queue

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	calls    int
	status   int
	err      error
	lastTo   string
	lastData any
}

func (f *fakeMailer) Send(templateFile mailer.MailTemplateFile, toName, toEmail string, data any) (int, error) {
	f.calls++
	f.lastTo = toEmail
	f.lastData = data
	return f.status, f.err
}

func newContactJob(t *testing.T) MailJobPayload {
	job, err := NewContactMessageMailJob("Renova", "info@renova.example", mailer.ContactMessageData{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Necesito reformar la cocina",
	})
	require.NoError(t, err)
	return job
}

func TestHandleMailJobSendsContactMessage(t *testing.T) {
	fm := &fakeMailer{status: http.StatusAccepted}
	app := &MailConsumerContext{Logger: util.NewNopLogger(), Mailer: fm}

	retry, err := HandleMailJob(context.Background(), newContactJob(t), app)
	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, "info@renova.example", fm.lastTo)

	data, ok := fm.lastData.(mailer.ContactMessageData)
	require.True(t, ok)
	assert.Equal(t, "Ana", data.Name)
}

func TestHandleMailJobFailures(t *testing.T) {
	app := &MailConsumerContext{Logger: util.NewNopLogger(), Mailer: &fakeMailer{status: http.StatusBadRequest}}

	retry, err := HandleMailJob(context.Background(), newContactJob(t), app)
	assert.Error(t, err)
	assert.True(t, retry)

	job := newContactJob(t)
	job.TemplateFile = "unknown.tmpl"
	retry, err = HandleMailJob(context.Background(), job, app)
	assert.Error(t, err)
	assert.False(t, retry)

	job = newContactJob(t)
	job.Data = []byte(`{"name":`)
	retry, err = HandleMailJob(context.Background(), job, app)
	assert.Error(t, err)
	assert.False(t, retry)
}

func TestDirectMailDispatcherRetries(t *testing.T) {
	fm := &fakeMailer{err: errors.New("smtp down")}
	d := NewDirectMailDispatcher(&MailConsumerContext{Logger: util.NewNopLogger(), Mailer: fm})

	err := d.Dispatch(context.Background(), newContactJob(t))
	assert.Error(t, err)
	assert.Equal(t, MAX_QUEUE_RETRY+1, fm.calls)

	fm = &fakeMailer{status: http.StatusOK}
	d = NewDirectMailDispatcher(&MailConsumerContext{Logger: util.NewNopLogger(), Mailer: fm})
	require.NoError(t, d.Dispatch(context.Background(), newContactJob(t)))
	assert.Equal(t, 1, fm.calls)
}
