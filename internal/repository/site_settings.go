package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/cache"
	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/metrics"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const siteSettingsCacheKey = "site_settings:" + constant.SITE_SETTINGS_ID

type SiteSettingsRepository struct {
	*baseRepository
	cache   *cache.JSONCache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// Get returns the stored settings, or the defaults when nothing was saved yet.
// Reads go through the cache when one is configured; cache errors fall back to the database.
func (sr SiteSettingsRepository) Get(ctx context.Context, tx *gorm.DB) (*model.SiteSettings, error) {
	sr.logger.Debug("Get site settings")

	// Inside a transaction the cache could serve a value the caller is about to overwrite.
	useCache := tx == nil && sr.cache.Enabled()

	if useCache {
		var cached model.SiteSettings
		found, err := sr.cache.Get(ctx, siteSettingsCacheKey, &cached)
		if err != nil {
			sr.logger.Warnw("Failed to read site settings from cache", "error", err)
		}
		if found {
			sr.metrics.CacheHit("site_settings")
			return &cached, nil
		}
		sr.metrics.CacheMiss("site_settings")
	}

	settings, err := sr.load(ctx, sr.getDB(tx))
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := sr.cache.Set(ctx, siteSettingsCacheKey, settings, sr.ttl); err != nil {
			sr.logger.Warnw("Failed to write site settings to cache", "error", err)
		}
	}

	return settings, nil
}

func (sr SiteSettingsRepository) load(ctx context.Context, db *gorm.DB) (*model.SiteSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var settings model.SiteSettings
	err := db.WithContext(ctx).Where("id = ?", constant.SITE_SETTINGS_ID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := model.DefaultSiteSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update writes every field of settings to the single row, creating it on first save.
func (sr SiteSettingsRepository) Update(ctx context.Context, tx *gorm.DB, settings model.SiteSettings) (*model.SiteSettings, error) {
	sr.logger.Debugf("Update site settings with data: %+v \n", settings)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	settings.ID = constant.SITE_SETTINGS_ID
	settings.UpdatedAt = time.Now()
	if settings.ServicesList == nil {
		settings.ServicesList = []string{}
	}
	if settings.QuickLinksList == nil {
		settings.QuickLinksList = []model.QuickLink{}
	}

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&settings).Error; err != nil {
		return nil, err
	}

	if err := sr.cache.Delete(ctx, siteSettingsCacheKey); err != nil {
		sr.logger.Warnw("Failed to invalidate site settings cache", "error", err)
	}

	return &settings, nil
}
