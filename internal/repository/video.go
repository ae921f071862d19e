package repository

import (
	"context"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/gorm"
)

type VideoRepository struct {
	*baseRepository
	order *OrderRepository
}

type VideoInput struct {
	VideoURL    string
	StoragePath string
	VideoType   portfolio.VideoType
	Title       *string
	Description *string
}

func (vr VideoRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectID string) ([]model.ProjectVideo, error) {
	vr.logger.Debugf("List videos of project: %s \n", projectID)

	db := vr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	videos := []model.ProjectVideo{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("order_index").Order("created_at").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (vr VideoRepository) positions(ctx context.Context, db *gorm.DB, projectID string) ([]portfolio.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var videos []model.ProjectVideo
	if err := db.WithContext(ctx).Select("id", "order_index", "created_at").
		Where("project_id = ?", projectID).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return portfolio.VideoPositions(model.ProjectVideosToPortfolio(videos)), nil
}

func (vr VideoRepository) GetById(ctx context.Context, tx *gorm.DB, projectID string, videoID string) (*model.ProjectVideo, error) {
	vr.logger.Debugf("Get video %s of project %s \n", videoID, projectID)

	db := vr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var video model.ProjectVideo
	if err := db.WithContext(ctx).Where("id = ? AND project_id = ?", videoID, projectID).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// Create appends the video at the end of the project's video list.
func (vr VideoRepository) Create(ctx context.Context, tx *gorm.DB, projectID string, in VideoInput) (*model.ProjectVideo, error) {
	vr.logger.Debugf("Create video for project %s with data: %+v \n", projectID, in)

	db := vr.getDB(tx)
	positions, err := vr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	video := model.ProjectVideo{
		ProjectID:   projectID,
		VideoURL:    in.VideoURL,
		StoragePath: in.StoragePath,
		VideoType:   string(in.VideoType),
		Title:       in.Title,
		Description: in.Description,
		OrderIndex:  portfolio.NextOrderIndex(positions),
	}
	if err := db.WithContext(ctx).Create(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (vr VideoRepository) Update(ctx context.Context, tx *gorm.DB, projectID string, videoID string, title, description *string) (*model.ProjectVideo, error) {
	vr.logger.Debugf("Update video %s of project %s \n", videoID, projectID)

	db := vr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	video, err := vr.GetById(ctx, db, projectID, videoID)
	if err != nil {
		return nil, err
	}

	video.Title = title
	video.Description = description
	if err := db.WithContext(ctx).Model(video).Select("title", "description", "updated_at").Updates(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

func (vr VideoRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string, videoID string) error {
	vr.logger.Debugf("Delete video %s of project %s \n", videoID, projectID)

	db := vr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	video, err := vr.GetById(ctx, db, projectID, videoID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(&model.ProjectVideo{}, "id = ?", video.ID).Error; err != nil {
		return err
	}

	vr.removeObjects(ctx, video.StoragePath)
	return nil
}

func (vr VideoRepository) Reorder(ctx context.Context, tx *gorm.DB, projectID string, from, to int) ([]portfolio.Position, error) {
	vr.logger.Debugf("Reorder videos of project %s from %d to %d \n", projectID, from, to)

	db := vr.getDB(tx)
	positions, err := vr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	moved, err := portfolio.Move(positions, from, to)
	if err != nil {
		return nil, err
	}

	return moved, vr.order.ApplyOrder(ctx, db, &model.ProjectVideo{}, changedPositions(positions, moved))
}

func (vr VideoRepository) Swap(ctx context.Context, tx *gorm.DB, projectID string, videoID string, dir portfolio.Direction) ([]portfolio.Position, error) {
	vr.logger.Debugf("Swap video %s of project %s in direction %d \n", videoID, projectID, dir)

	db := vr.getDB(tx)
	positions, err := vr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	swapped, err := portfolio.Swap(positions, videoID, dir)
	if err != nil {
		return nil, err
	}

	return swapped, vr.order.ApplyOrder(ctx, db, &model.ProjectVideo{}, swapped)
}
