package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/env"
	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/SeakMengs/RenovaSite/internal/queue"
	"github.com/SeakMengs/RenovaSite/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	mail := mailer.New(cfg.Mail, cfg.IsProduction(), logger)
	if mail == nil {
		logger.Panic("No mail transport configured, set MAIL_SEND_GRID_API_KEY or MAIL_SMTP_HOST")
	}

	app := queue.MailConsumerContext{
		Config: &cfg,
		Logger: logger,
		Mailer: mail,
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	logger.Info("RabbitMQ connected \n")
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rabbitMQ.ConsumeMailJob(ctx, queue.HandleMailJob, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	<-ctx.Done()
	logger.Info("Shutting down mail consumer")
}
