package repository

import (
	"context"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/gorm"
)

type ImageRepository struct {
	*baseRepository
	order *OrderRepository
}

type ImageInput struct {
	ImageURL    string
	StoragePath string
	ImageType   portfolio.ImageType
	Caption     *string
	Width       int
	Height      int
}

func (ir ImageRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectID string) ([]model.ProjectImage, error) {
	ir.logger.Debugf("List images of project: %s \n", projectID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	images := []model.ProjectImage{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("image_type").Order("order_index").Order("created_at").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (ir ImageRepository) partition(ctx context.Context, db *gorm.DB, projectID string, imageType portfolio.ImageType) ([]portfolio.Position, error) {
	var images []model.ProjectImage
	if err := db.WithContext(ctx).Select("id", "order_index", "created_at").
		Where("project_id = ? AND image_type = ?", projectID, string(imageType)).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return portfolio.ImagePositions(model.ProjectImagesToPortfolio(images)), nil
}

func (ir ImageRepository) GetById(ctx context.Context, tx *gorm.DB, projectID string, imageID string) (*model.ProjectImage, error) {
	ir.logger.Debugf("Get image %s of project %s \n", imageID, projectID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var image model.ProjectImage
	if err := db.WithContext(ctx).Where("id = ? AND project_id = ?", imageID, projectID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// Create appends the image at the end of its type partition.
func (ir ImageRepository) Create(ctx context.Context, tx *gorm.DB, projectID string, in ImageInput) (*model.ProjectImage, error) {
	ir.logger.Debugf("Create image for project %s with data: %+v \n", projectID, in)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	positions, err := ir.partition(ctx, db, projectID, in.ImageType)
	if err != nil {
		return nil, err
	}

	image := model.ProjectImage{
		ProjectID:   projectID,
		ImageURL:    in.ImageURL,
		StoragePath: in.StoragePath,
		ImageType:   string(in.ImageType),
		Caption:     in.Caption,
		OrderIndex:  portfolio.NextOrderIndex(positions),
		Width:       in.Width,
		Height:      in.Height,
	}
	if err := db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// Update sets the caption and, when imageType differs, moves the image to the end of the new partition.
func (ir ImageRepository) Update(ctx context.Context, tx *gorm.DB, projectID string, imageID string, caption *string, imageType portfolio.ImageType) (*model.ProjectImage, error) {
	ir.logger.Debugf("Update image %s of project %s \n", imageID, projectID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	image, err := ir.GetById(ctx, db, projectID, imageID)
	if err != nil {
		return nil, err
	}

	image.Caption = caption
	if imageType != "" && string(imageType) != image.ImageType {
		positions, err := ir.partition(ctx, db, projectID, imageType)
		if err != nil {
			return nil, err
		}
		image.ImageType = string(imageType)
		image.OrderIndex = portfolio.NextOrderIndex(positions)
	}

	if err := db.WithContext(ctx).Model(image).Select("caption", "image_type", "order_index", "updated_at").Updates(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// Delete removes the row, then its object best effort. Siblings keep their indexes.
func (ir ImageRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string, imageID string) error {
	ir.logger.Debugf("Delete image %s of project %s \n", imageID, projectID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	image, err := ir.GetById(ctx, db, projectID, imageID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(&model.ProjectImage{}, "id = ?", image.ID).Error; err != nil {
		return err
	}

	ir.removeObjects(ctx, image.StoragePath)
	return nil
}

// Reorder moves the image at display position from to position to inside one partition and
// renumbers the partition. The returned positions are the intended order even when some
// writes failed.
func (ir ImageRepository) Reorder(ctx context.Context, tx *gorm.DB, projectID string, imageType portfolio.ImageType, from, to int) ([]portfolio.Position, error) {
	ir.logger.Debugf("Reorder %s images of project %s from %d to %d \n", imageType, projectID, from, to)

	db := ir.getDB(tx)
	positions, err := ir.partitionWithTimeout(ctx, db, projectID, imageType)
	if err != nil {
		return nil, err
	}

	moved, err := portfolio.Move(positions, from, to)
	if err != nil {
		return nil, err
	}

	return moved, ir.order.ApplyOrder(ctx, db, &model.ProjectImage{}, changedPositions(positions, moved))
}

// Swap exchanges the order_index of the image with its neighbor in its partition.
func (ir ImageRepository) Swap(ctx context.Context, tx *gorm.DB, projectID string, imageID string, dir portfolio.Direction) ([]portfolio.Position, error) {
	ir.logger.Debugf("Swap image %s of project %s in direction %d \n", imageID, projectID, dir)

	db := ir.getDB(tx)
	image, err := ir.GetById(ctx, db, projectID, imageID)
	if err != nil {
		return nil, err
	}

	positions, err := ir.partitionWithTimeout(ctx, db, projectID, portfolio.ImageType(image.ImageType))
	if err != nil {
		return nil, err
	}

	swapped, err := portfolio.Swap(positions, imageID, dir)
	if err != nil {
		return nil, err
	}

	return swapped, ir.order.ApplyOrder(ctx, db, &model.ProjectImage{}, swapped)
}

func (ir ImageRepository) partitionWithTimeout(ctx context.Context, db *gorm.DB, projectID string, imageType portfolio.ImageType) ([]portfolio.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()
	return ir.partition(ctx, db, projectID, imageType)
}
