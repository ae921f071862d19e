package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/cache"
	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	filestorage "github.com/SeakMengs/RenovaSite/internal/file_storage"
	"github.com/SeakMengs/RenovaSite/internal/metrics"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSlugTaken = errors.New("slug is already taken")
)

type baseRepository struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	jwtService auth.JWTInterface
	storage    filestorage.ObjectStorage
}

type Repository struct {
	// DB can be used for transaction. Example usage:
	// tx := r.DB.Begin()
	// defer tx.Commit()
	// Then pass tx to the repository function. and use tx.Rollback() if error occurred
	DB            *gorm.DB
	User          *UserRepository
	JWT           *JWTRepository
	OAuthProvider *OAuthProviderRepository
	Project       *ProjectRepository
	Category      *CategoryRepository
	Image         *ImageRepository
	Video         *VideoRepository
	ContentBlock  *ContentBlockRepository
	SiteSettings  *SiteSettingsRepository
	Dashboard     *DashboardRepository
	Order         *OrderRepository
}

// SettingsCacheOptions configures the read-through cache in front of site settings.
// A nil Cache disables it.
type SettingsCacheOptions struct {
	Cache   *cache.JSONCache
	TTL     time.Duration
	Metrics *metrics.Metrics
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, storage filestorage.ObjectStorage) *baseRepository {
	return &baseRepository{db: db, logger: logger, jwtService: jwtService, storage: storage}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, storage filestorage.ObjectStorage, settingsCache SettingsCacheOptions) *Repository {
	br := newBaseRepository(db, logger, jwtService, storage)
	_userRepo := &UserRepository{baseRepository: br}
	_orderRepo := &OrderRepository{baseRepository: br}

	return &Repository{
		DB:            db,
		User:          _userRepo,
		JWT:           &JWTRepository{baseRepository: br, user: _userRepo},
		OAuthProvider: &OAuthProviderRepository{baseRepository: br},
		Project:       &ProjectRepository{baseRepository: br},
		Category:      &CategoryRepository{baseRepository: br},
		Image:         &ImageRepository{baseRepository: br, order: _orderRepo},
		Video:         &VideoRepository{baseRepository: br, order: _orderRepo},
		ContentBlock:  &ContentBlockRepository{baseRepository: br, order: _orderRepo},
		SiteSettings: &SiteSettingsRepository{
			baseRepository: br,
			cache:          settingsCache.Cache,
			ttl:            settingsCache.TTL,
			metrics:        settingsCache.Metrics,
		},
		Dashboard: &DashboardRepository{baseRepository: br},
		Order:     _orderRepo,
	}
}

// Example usage can be found in category repository: Update
// Note: GORM perform write (create/update/delete) operations run inside a transaction to ensure data consistency | So this function is helpful only if we disable auto transaction
// Docs: https://gorm.io/docs/transactions.html#Disable-Default-Transaction
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Errorf("withTx Transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}

// removeObjects deletes storage objects best effort. Failures are logged, never returned.
// It runs on its own deadline, detached from the caller's.
func (b baseRepository) removeObjects(ctx context.Context, paths ...string) {
	paths = lo.Compact(paths)
	if len(paths) == 0 || b.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constant.STORAGE_CLEANUP_TIMEOUT_DURATION)
	defer cancel()

	if err := b.storage.Remove(ctx, paths...); err != nil {
		b.logger.Warnw("Failed to remove storage objects", "paths", paths, "error", err)
	}
}
