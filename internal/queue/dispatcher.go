package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// MailDispatcher hands a mail job to whoever delivers it.
type MailDispatcher interface {
	Dispatch(ctx context.Context, job MailJobPayload) error
}

func (r *RabbitMQ) Dispatch(ctx context.Context, job MailJobPayload) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	if err := r.Publish(ctx, QueueMail, body); err != nil {
		return fmt.Errorf("failed to publish mail job: %w", err)
	}

	return nil
}

// DirectMailDispatcher sends in the calling goroutine. Used when no broker is configured.
type DirectMailDispatcher struct {
	app *MailConsumerContext
}

func NewDirectMailDispatcher(app *MailConsumerContext) *DirectMailDispatcher {
	return &DirectMailDispatcher{app: app}
}

func (d *DirectMailDispatcher) Dispatch(ctx context.Context, job MailJobPayload) error {
	var lastErr error
	for job.Try = 0; job.Try <= MAX_QUEUE_RETRY; job.Try++ {
		retry, err := HandleMailJob(ctx, job, d.app)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			break
		}
	}

	return lastErr
}
