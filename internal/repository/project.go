package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*baseRepository
}

// ProjectInput holds every editable project field. Category is derived from CategoryID.
type ProjectInput struct {
	Title          string
	Slug           string
	CategoryID     *string
	Location       string
	Description    string
	CoverImage     string
	Client         string
	CompletionDate *time.Time
	Area           string
	BudgetRange    string
	Materials      map[string]string
	Features       []string
	Published      bool
}

type ProjectFilter struct {
	Search       string
	CategoryID   string
	CategorySlug string
	// nil lists drafts and published projects together
	Published *bool
	Page      uint
	PageSize  uint
}

var projectEditableColumns = []string{
	"title", "slug", "category", "category_id", "location", "description", "cover_image",
	"cover_image_path", "client", "completion_date", "area", "budget_range", "materials",
	"features", "published", "updated_at",
}

// IsSlugTaken reports whether a project other than excludeID uses slug.
func (pr ProjectRepository) IsSlugTaken(ctx context.Context, tx *gorm.DB, slug string, excludeID string) (bool, error) {
	pr.logger.Debugf("Check project slug: %s, exclude: %s \n", slug, excludeID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Project{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (pr ProjectRepository) GetById(ctx context.Context, tx *gorm.DB, projectID string) (*model.Project, error) {
	pr.logger.Debugf("Get project by id: %s \n", projectID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (pr ProjectRepository) GetBySlug(ctx context.Context, tx *gorm.DB, slug string, publishedOnly bool) (*model.Project, error) {
	pr.logger.Debugf("Get project by slug: %s, published only: %v \n", slug, publishedOnly)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Project{}).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var project model.Project
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (pr ProjectRepository) applyFilter(query *gorm.DB, filter ProjectFilter) *gorm.DB {
	if filter.Published != nil {
		query = query.Where("projects.published = ?", *filter.Published)
	}

	if filter.CategoryID != "" {
		query = query.Where("projects.category_id = ?", filter.CategoryID)
	}

	if filter.CategorySlug != "" {
		query = query.Where("projects.category_id IN (?)",
			pr.db.Model(&model.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("(LOWER(projects.title) LIKE ? OR LOWER(projects.location) LIKE ? OR LOWER(projects.category) LIKE ?)", like, like, like)
	}

	return query
}

// List returns a page of projects, newest first, and the total matching the filter.
func (pr ProjectRepository) List(ctx context.Context, tx *gorm.DB, filter ProjectFilter) ([]model.Project, int64, error) {
	pr.logger.Debugf("List projects with filter: %+v \n", filter)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	page, pageSize := util.NormalizePage(filter.Page, filter.PageSize)

	var total int64
	if err := pr.applyFilter(db.WithContext(ctx).Model(&model.Project{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []model.Project{}
	if err := pr.applyFilter(db.WithContext(ctx).Model(&model.Project{}), filter).
		Order("projects.created_at DESC").Order("projects.id").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Create checks the slug and resolves the category name before inserting.
func (pr ProjectRepository) Create(ctx context.Context, tx *gorm.DB, in ProjectInput) (*model.Project, error) {
	pr.logger.Debugf("Create project with data: %+v \n", in)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	err := pr.withTx(db, func(tx2 *gorm.DB) error {
		taken, err := pr.IsSlugTaken(ctx, tx2, in.Slug, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}

		categoryName, err := categoryNameOf(ctx, tx2, in.CategoryID)
		if err != nil {
			return err
		}

		project = model.Project{
			Title:          in.Title,
			Slug:           in.Slug,
			Category:       categoryName,
			CategoryID:     normalizeID(in.CategoryID),
			Location:       in.Location,
			Description:    in.Description,
			CoverImage:     in.CoverImage,
			Client:         in.Client,
			CompletionDate: in.CompletionDate,
			Area:           in.Area,
			BudgetRange:    in.BudgetRange,
			Materials:      model.MaterialsToJSONMap(in.Materials),
			Features:       model.FeaturesToJSONSlice(in.Features),
			Published:      in.Published,
		}

		return tx2.WithContext(ctx).Create(&project).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Update replaces every editable field. When the cover url changes away from an uploaded
// cover, that object is removed best effort.
func (pr ProjectRepository) Update(ctx context.Context, tx *gorm.DB, projectID string, in ProjectInput) (*model.Project, error) {
	pr.logger.Debugf("Update project %s with data: %+v \n", projectID, in)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var (
		project       *model.Project
		staleCoverKey string
	)
	err := pr.withTx(db, func(tx2 *gorm.DB) error {
		var err error
		project, err = pr.GetById(ctx, tx2, projectID)
		if err != nil {
			return err
		}

		taken, err := pr.IsSlugTaken(ctx, tx2, in.Slug, projectID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}

		categoryName, err := categoryNameOf(ctx, tx2, in.CategoryID)
		if err != nil {
			return err
		}

		coverPath := project.CoverImagePath
		if in.CoverImage != project.CoverImage && coverPath != "" {
			staleCoverKey = coverPath
			coverPath = ""
		}

		project.Title = in.Title
		project.Slug = in.Slug
		project.Category = categoryName
		project.CategoryID = normalizeID(in.CategoryID)
		project.Location = in.Location
		project.Description = in.Description
		project.CoverImage = in.CoverImage
		project.CoverImagePath = coverPath
		project.Client = in.Client
		project.CompletionDate = in.CompletionDate
		project.Area = in.Area
		project.BudgetRange = in.BudgetRange
		project.Materials = model.MaterialsToJSONMap(in.Materials)
		project.Features = model.FeaturesToJSONSlice(in.Features)
		project.Published = in.Published

		return tx2.WithContext(ctx).Model(project).Select(projectEditableColumns).Updates(project).Error
	})
	if err != nil {
		return nil, err
	}

	pr.removeObjects(ctx, staleCoverKey)
	return project, nil
}

func (pr ProjectRepository) SetPublished(ctx context.Context, tx *gorm.DB, projectID string, published bool) error {
	pr.logger.Debugf("Set project %s published: %v \n", projectID, published)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", projectID).Update("published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetCover points the project cover at url. objectPath is the key of an uploaded cover,
// empty for external urls. A previously uploaded cover is removed best effort.
func (pr ProjectRepository) SetCover(ctx context.Context, tx *gorm.DB, projectID string, url string, objectPath string) error {
	pr.logger.Debugf("Set cover of project %s to %s \n", projectID, url)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	project, err := pr.GetById(ctx, db, projectID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Model(project).Select("cover_image", "cover_image_path", "updated_at").Updates(model.Project{
		CoverImage:     url,
		CoverImagePath: objectPath,
	}).Error; err != nil {
		return err
	}

	if project.CoverImagePath != objectPath {
		pr.removeObjects(ctx, project.CoverImagePath)
	}
	return nil
}

// Delete removes the project with its images, videos and content blocks, then removes their
// storage objects best effort. A storage failure never keeps the rows around.
func (pr ProjectRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string) error {
	pr.logger.Debugf("Delete project: %s \n", projectID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var objectPaths []string
	err := pr.withTx(db, func(tx2 *gorm.DB) error {
		project, err := pr.GetById(ctx, tx2, projectID)
		if err != nil {
			return err
		}

		var imagePaths, videoPaths []string
		if err := tx2.WithContext(ctx).Model(&model.ProjectImage{}).Where("project_id = ?", projectID).Pluck("storage_path", &imagePaths).Error; err != nil {
			return err
		}
		if err := tx2.WithContext(ctx).Model(&model.ProjectVideo{}).Where("project_id = ?", projectID).Pluck("storage_path", &videoPaths).Error; err != nil {
			return err
		}

		for _, child := range []any{&model.ContentBlock{}, &model.ProjectImage{}, &model.ProjectVideo{}} {
			if err := tx2.WithContext(ctx).Where("project_id = ?", projectID).Delete(child).Error; err != nil {
				return err
			}
		}

		if err := tx2.WithContext(ctx).Delete(&model.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}

		objectPaths = append(append(imagePaths, videoPaths...), project.CoverImagePath)
		return nil
	})
	if err != nil {
		return err
	}

	pr.removeObjects(ctx, objectPaths...)
	return nil
}

// Assemble loads the media and content blocks of project and builds its ordered view.
func (pr ProjectRepository) Assemble(ctx context.Context, tx *gorm.DB, project *model.Project) (portfolio.ProjectView, []portfolio.Block, error) {
	pr.logger.Debugf("Assemble project: %s \n", project.ID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var images []model.ProjectImage
	if err := db.WithContext(ctx).Where("project_id = ?", project.ID).Find(&images).Error; err != nil {
		return portfolio.ProjectView{}, nil, err
	}

	var videos []model.ProjectVideo
	if err := db.WithContext(ctx).Where("project_id = ?", project.ID).Find(&videos).Error; err != nil {
		return portfolio.ProjectView{}, nil, err
	}

	var rows []model.ContentBlock
	if err := db.WithContext(ctx).Where("project_id = ?", project.ID).
		Order("order_index").Order("created_at").Order("id").
		Find(&rows).Error; err != nil {
		return portfolio.ProjectView{}, nil, err
	}

	view := portfolio.AssembleProject(project.ToPortfolio(), model.ProjectImagesToPortfolio(images), model.ProjectVideosToPortfolio(videos))
	return view, pr.decodeBlocks(rows), nil
}

// A stored payload that no longer decodes is shown as unsupported instead of failing the page.
func (b baseRepository) decodeBlocks(rows []model.ContentBlock) []portfolio.Block {
	blocks := make([]portfolio.Block, 0, len(rows))
	for _, row := range rows {
		block, err := row.ToPortfolio()
		if err != nil {
			b.logger.Warnw("Failed to decode content block", "blockId", row.ID, "blockType", row.BlockType, "error", err)
			block = portfolio.Block{
				ID:         row.ID,
				Type:       portfolio.BlockType(row.BlockType),
				Content:    portfolio.UnsupportedContent{Type: portfolio.BlockType(row.BlockType), Raw: []byte(row.Content)},
				OrderIndex: row.OrderIndex,
				Supported:  false,
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func normalizeID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}

var ErrCategoryNotFound = errors.New("category not found")

// categoryNameOf resolves the denormalized category name written next to category_id.
func categoryNameOf(ctx context.Context, db *gorm.DB, categoryID *string) (string, error) {
	id := normalizeID(categoryID)
	if id == nil {
		return "", nil
	}

	var category model.Category
	if err := db.WithContext(ctx).Model(&model.Category{}).Select("name").Where("id = ?", *id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCategoryNotFound
		}
		return "", err
	}

	return category.Name, nil
}
