package repository

import (
	"context"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"gorm.io/gorm"
)

const recentProjectsLimit = 5

type DashboardRepository struct {
	*baseRepository
}

type DashboardStats struct {
	Projects          int64           `json:"projects"`
	PublishedProjects int64           `json:"publishedProjects"`
	DraftProjects     int64           `json:"draftProjects"`
	Categories        int64           `json:"categories"`
	Images            int64           `json:"images"`
	Videos            int64           `json:"videos"`
	RecentProjects    []model.Project `json:"-"`
}

func (dr DashboardRepository) Stats(ctx context.Context, tx *gorm.DB) (*DashboardStats, error) {
	dr.logger.Debug("Get dashboard stats")

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var stats DashboardStats
	counts := []struct {
		query *gorm.DB
		dst   *int64
	}{
		{db.Model(&model.Project{}), &stats.Projects},
		{db.Model(&model.Project{}).Where("published = ?", true), &stats.PublishedProjects},
		{db.Model(&model.Category{}), &stats.Categories},
		{db.Model(&model.ProjectImage{}), &stats.Images},
		{db.Model(&model.ProjectVideo{}), &stats.Videos},
	}
	for _, c := range counts {
		if err := c.query.WithContext(ctx).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	stats.DraftProjects = stats.Projects - stats.PublishedProjects

	stats.RecentProjects = []model.Project{}
	if err := db.WithContext(ctx).Order("updated_at DESC").Limit(recentProjectsLimit).Find(&stats.RecentProjects).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
