package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type MailConsumerContext struct {
	Config *config.Config
	Logger *zap.SugaredLogger
	Mailer mailer.Client
}

type MailJobPayload struct {
	ToName       string                  `json:"to_name"`
	ToEmail      string                  `json:"to_email"`
	TemplateFile mailer.MailTemplateFile `json:"template_file"`
	Data         json.RawMessage         `json:"data"`
	CreatedAt    string                  `json:"created_at"`
	Try          int                     `json:"try" default:"0"`
}

func NewMailJobPayload[T any](toName, toEmail string, templateFile mailer.MailTemplateFile, data T) (MailJobPayload, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return MailJobPayload{}, fmt.Errorf("failed to marshal data: %w", err)
	}

	return MailJobPayload{
		ToName:       toName,
		ToEmail:      toEmail,
		TemplateFile: templateFile,
		Data:         dataBytes,
		Try:          0,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

func NewContactMessageMailJob(toName, toEmail string, data mailer.ContactMessageData) (MailJobPayload, error) {
	return NewMailJobPayload(toName, toEmail, mailer.TemplateContactMessage, data)
}

// Returns whether the job should be retried when err is not nil.
type MailJobHandler func(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error)

// HandleMailJob decodes the template data and sends it with app.Mailer.
func HandleMailJob(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error) {
	switch jobPayload.TemplateFile {
	case mailer.TemplateContactMessage:
		var data mailer.ContactMessageData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal ContactMessageData: %w", err)
		}

		status, err := app.Mailer.Send(jobPayload.TemplateFile, jobPayload.ToName, jobPayload.ToEmail, data)
		if err != nil {
			return true, fmt.Errorf("failed to send email: %w", err)
		}

		if status != http.StatusOK && status != http.StatusAccepted {
			return true, fmt.Errorf("email sending failed with status: %d", status)
		}

		return false, nil
	default:
		return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
	}
}

func (r *RabbitMQ) ConsumeMailJob(ctx context.Context, handler MailJobHandler, maxWorker int, app *MailConsumerContext) error {
	msgs, err := r.Consume(QueueMail)
	if err != nil {
		return fmt.Errorf("failed to start consuming mail jobs: %w", err)
	}

	for i := range maxWorker {
		go func(workerNumber int) {
			runMailWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runMailWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			app.Logger.Infof("[Mail Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				app.Logger.Infof("[Mail Worker %d] Message channel closed", workerNumber)
				return
			}
			processMailJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

func processMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	if msg.Body == nil {
		app.Logger.Warnf("[Mail Worker %d] Received empty message body", workerNumber)
		_ = rabbitMQ.Nack(msg, false)
		return
	}

	var jobPayload MailJobPayload
	if err := json.Unmarshal(msg.Body, &jobPayload); err != nil {
		app.Logger.Warnf("[Mail Worker %d] Invalid payload: %v", workerNumber, err)
		_ = rabbitMQ.Nack(msg, false)
		return
	}

	workerPrefix := fmt.Sprintf("[Mail Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err != nil {
		app.Logger.Errorf("%s Handler error processing mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)

		if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
			app.Logger.Warnf("%s Dropping mail job for recipient: %s, template: %s (retry: %d, shouldRequeue: %v)",
				workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, jobPayload.Try, shouldRequeue)
			_ = rabbitMQ.Nack(msg, false)
			return
		}

		requeueMailJob(ctx, rabbitMQ, workerPrefix, msg, jobPayload, app.Logger)
		return
	}

	app.Logger.Infof("%s Successfully processed mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	_ = rabbitMQ.Ack(msg)
}

func requeueMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerPrefix string, msg amqp091.Delivery, jobPayload MailJobPayload, logger *zap.SugaredLogger) {
	jobPayload.Try++
	payloadBytes, err := json.Marshal(jobPayload)
	if err != nil {
		logger.Errorf("%s Failed to marshal mail payload for requeue: %v", workerPrefix, err)
		_ = rabbitMQ.Nack(msg, false)
		return
	}

	if err := rabbitMQ.Publish(ctx, QueueMail, payloadBytes); err != nil {
		logger.Errorf("%s Failed to requeue mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)
		_ = rabbitMQ.Nack(msg, false)
		return
	}

	logger.Infof("%s Requeued mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	_ = rabbitMQ.Ack(msg)
}
