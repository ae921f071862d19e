package appcontext

import (
	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/config"
	filestorage "github.com/SeakMengs/RenovaSite/internal/file_storage"
	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/SeakMengs/RenovaSite/internal/metrics"
	"github.com/SeakMengs/RenovaSite/internal/queue"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// MailDispatcher hands contact mails to the queue, or sends them inline when no broker is configured.
	MailDispatcher queue.MailDispatcher

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	// Storage holds uploaded project media.
	Storage filestorage.ObjectStorage

	Metrics *metrics.Metrics
}
