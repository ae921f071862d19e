package repository

import (
	"context"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	*baseRepository
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
}

type CategoryWithCount struct {
	model.Category
	ProjectCount int64 `json:"projectCount"`
}

func (cr CategoryRepository) IsSlugTaken(ctx context.Context, tx *gorm.DB, slug string, excludeID string) (bool, error) {
	cr.logger.Debugf("Check category slug: %s, exclude: %s \n", slug, excludeID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Category{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr CategoryRepository) List(ctx context.Context, tx *gorm.DB) ([]CategoryWithCount, error) {
	cr.logger.Debug("List categories")

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var categories []model.Category
	if err := db.WithContext(ctx).Model(&model.Category{}).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID string
		Total      int64
	}
	var counts []countRow
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Total
	}

	out := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryWithCount{Category: c, ProjectCount: byID[c.ID]})
	}
	return out, nil
}

func (cr CategoryRepository) GetById(ctx context.Context, tx *gorm.DB, categoryID string) (*model.Category, error) {
	cr.logger.Debugf("Get category by id: %s \n", categoryID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var category model.Category
	if err := db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (cr CategoryRepository) Create(ctx context.Context, tx *gorm.DB, in CategoryInput) (*model.Category, error) {
	cr.logger.Debugf("Create category with data: %+v \n", in)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	taken, err := cr.IsSlugTaken(ctx, db, in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	category := model.Category{Name: in.Name, Slug: in.Slug, Description: in.Description}
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames the category and rewrites the name cached on its projects in the same transaction.
func (cr CategoryRepository) Update(ctx context.Context, tx *gorm.DB, categoryID string, in CategoryInput) (*model.Category, error) {
	cr.logger.Debugf("Update category %s with data: %+v \n", categoryID, in)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var category *model.Category
	err := cr.withTx(db, func(tx2 *gorm.DB) error {
		var err error
		category, err = cr.GetById(ctx, tx2, categoryID)
		if err != nil {
			return err
		}

		taken, err := cr.IsSlugTaken(ctx, tx2, in.Slug, categoryID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}

		renamed := category.Name != in.Name
		category.Name = in.Name
		category.Slug = in.Slug
		category.Description = in.Description

		if err := tx2.WithContext(ctx).Model(category).Select("name", "slug", "description", "updated_at").Updates(category).Error; err != nil {
			return err
		}

		if !renamed {
			return nil
		}

		return tx2.WithContext(ctx).Model(&model.Project{}).Where("category_id = ?", categoryID).Update("category", in.Name).Error
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Delete detaches the category from its projects, clearing the cached name, then removes it.
func (cr CategoryRepository) Delete(ctx context.Context, tx *gorm.DB, categoryID string) error {
	cr.logger.Debugf("Delete category: %s \n", categoryID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return cr.withTx(db, func(tx2 *gorm.DB) error {
		if _, err := cr.GetById(ctx, tx2, categoryID); err != nil {
			return err
		}

		if err := tx2.WithContext(ctx).Model(&model.Project{}).Where("category_id = ?", categoryID).
			Updates(map[string]any{"category_id": nil, "category": ""}).Error; err != nil {
			return err
		}

		return tx2.WithContext(ctx).Delete(&model.Category{}, "id = ?", categoryID).Error
	})
}
