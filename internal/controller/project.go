package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
)

const completionDateLayout = "2006-01-02"

// ProjectController is the admin side of projects. Every handler runs behind the admin middleware.
type ProjectController struct {
	*baseController
}

type projectRequest struct {
	Title          string            `json:"title" form:"title" binding:"required,strNotEmpty,cmax=200"`
	Slug           string            `json:"slug" form:"slug" binding:"omitempty,slug"`
	CategoryID     *string           `json:"categoryId" form:"categoryId"`
	Location       string            `json:"location" form:"location" binding:"cmax=200"`
	Description    string            `json:"description" form:"description"`
	CoverImage     string            `json:"coverImage" form:"coverImage" binding:"omitempty,url"`
	Client         string            `json:"client" form:"client" binding:"cmax=200"`
	CompletionDate string            `json:"completionDate" form:"completionDate" binding:"omitempty,datetime=2006-01-02"`
	Area           string            `json:"area" form:"area" binding:"cmax=100"`
	BudgetRange    string            `json:"budgetRange" form:"budgetRange" binding:"cmax=100"`
	Materials      map[string]string `json:"materials" form:"materials"`
	Features       []string          `json:"features" form:"features" binding:"omitempty,dive,strNotEmpty,cmax=200"`
	Published      bool              `json:"published" form:"published"`
}

// toInput derives the slug from the title when none was sent.
func (r projectRequest) toInput() (repository.ProjectInput, error) {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		slug = portfolio.Slugify(r.Title)
	}
	if !portfolio.IsValidSlug(slug) {
		return repository.ProjectInput{}, errors.New("a slug could not be derived from the title")
	}

	var completionDate *time.Time
	if r.CompletionDate != "" {
		d, err := time.Parse(completionDateLayout, r.CompletionDate)
		if err != nil {
			return repository.ProjectInput{}, err
		}
		completionDate = &d
	}

	return repository.ProjectInput{
		Title:          strings.TrimSpace(r.Title),
		Slug:           slug,
		CategoryID:     r.CategoryID,
		Location:       strings.TrimSpace(r.Location),
		Description:    r.Description,
		CoverImage:     strings.TrimSpace(r.CoverImage),
		Client:         strings.TrimSpace(r.Client),
		CompletionDate: completionDate,
		Area:           strings.TrimSpace(r.Area),
		BudgetRange:    strings.TrimSpace(r.BudgetRange),
		Materials:      r.Materials,
		Features:       r.Features,
		Published:      r.Published,
	}, nil
}

func (pc ProjectController) bindProject(ctx *gin.Context) (repository.ProjectInput, bool) {
	var body projectRequest
	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err, "Invalid request", "project")
		return repository.ProjectInput{}, false
	}

	in, err := body.toInput()
	if err != nil {
		pc.badRequest(ctx, err, "Invalid request", "slug")
		return repository.ProjectInput{}, false
	}
	return in, true
}

func (pc ProjectController) ListProjects(ctx *gin.Context) {
	filter := repository.ProjectFilter{
		Search:     ctx.Query("search"),
		CategoryID: ctx.Query("categoryId"),
		Page:       queryUint(ctx, "page"),
		PageSize:   queryUint(ctx, "pageSize"),
	}
	switch ctx.Query("published") {
	case "true":
		filter.Published = new(bool)
		*filter.Published = true
	case "false":
		filter.Published = new(bool)
	}

	projects, total, err := pc.app.Repository.Project.List(ctx, nil, filter)
	if err != nil {
		pc.fail(ctx, err, "Failed to list projects", "projects")
		return
	}

	page, pageSize := util.NormalizePage(filter.Page, filter.PageSize)
	util.ResponseSuccess(ctx, gin.H{
		"projects":  projectListItems(projects),
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
		"totalPage": util.CalculateTotalPage(total, pageSize),
	})
}

func (pc ProjectController) CreateProject(ctx *gin.Context) {
	in, ok := pc.bindProject(ctx)
	if !ok {
		return
	}

	project, err := pc.app.Repository.Project.Create(ctx, nil, in)
	if err != nil {
		pc.fail(ctx, err, "Failed to create project", "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project.ToPortfolio(),
	})
}

// GetProject returns the draft or published project with its media, as the editor needs it.
func (pc ProjectController) GetProject(ctx *gin.Context) {
	project, err := pc.app.Repository.Project.GetById(ctx, nil, ctx.Param("projectId"))
	if err != nil {
		pc.fail(ctx, err, "Project not found", "projectId")
		return
	}

	view, blocks, err := pc.app.Repository.Project.Assemble(ctx, nil, project)
	if err != nil {
		pc.fail(ctx, err, "Failed to load project", "project")
		return
	}

	util.ResponseSuccess(ctx, projectDetail(view, blocks))
}

func (pc ProjectController) UpdateProject(ctx *gin.Context) {
	in, ok := pc.bindProject(ctx)
	if !ok {
		return
	}

	project, err := pc.app.Repository.Project.Update(ctx, nil, ctx.Param("projectId"), in)
	if err != nil {
		pc.fail(ctx, err, "Failed to update project", "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project.ToPortfolio(),
	})
}

func (pc ProjectController) DeleteProject(ctx *gin.Context) {
	if err := pc.app.Repository.Project.Delete(ctx, nil, ctx.Param("projectId")); err != nil {
		pc.fail(ctx, err, "Failed to delete project", "projectId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": true,
	})
}

// SlugAvailable lets the form block submission before the create or update call answers 409.
func (pc ProjectController) SlugAvailable(ctx *gin.Context) {
	type Request struct {
		Slug      string `form:"slug" binding:"required,slug"`
		ExcludeID string `form:"excludeId"`
	}
	var query Request

	if err := ctx.ShouldBindQuery(&query); err != nil {
		pc.badRequest(ctx, err, "Invalid slug", "slug")
		return
	}

	taken, err := pc.app.Repository.Project.IsSlugTaken(ctx, nil, query.Slug, query.ExcludeID)
	if err != nil {
		pc.fail(ctx, err, "Failed to check slug", "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"slug":      query.Slug,
		"available": !taken,
	})
}

func (pc ProjectController) SetPublished(ctx *gin.Context) {
	type Request struct {
		Published *bool `json:"published" form:"published" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		pc.badRequest(ctx, err, "Invalid request", "published")
		return
	}

	if err := pc.app.Repository.Project.SetPublished(ctx, nil, ctx.Param("projectId"), *body.Published); err != nil {
		pc.fail(ctx, err, "Failed to update project", "projectId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"published": *body.Published,
	})
}

func (pc ProjectController) UploadCover(ctx *gin.Context) {
	projectID := ctx.Param("projectId")

	if _, err := pc.app.Repository.Project.GetById(ctx, nil, projectID); err != nil {
		pc.fail(ctx, err, "Project not found", "projectId")
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		pc.badRequest(ctx, err, "No cover image uploaded", "file")
		return
	}

	stored, err := pc.storeImage(ctx, fh, util.GetProjectCoverDirectoryPath(projectID), constant.MaxImageUploadSize)
	if err != nil {
		pc.fail(ctx, err, "Failed to upload cover image", "file")
		return
	}

	if err := pc.app.Repository.Project.SetCover(ctx, nil, projectID, stored.URL, stored.ObjectPath); err != nil {
		// the row was not updated, so the object is orphaned
		if rmErr := pc.app.Storage.Remove(ctx, stored.ObjectPath); rmErr != nil {
			pc.app.Logger.Warnw("Failed to remove orphaned cover", "path", stored.ObjectPath, "error", rmErr)
		}
		pc.fail(ctx, err, "Failed to set cover image", "file")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"coverImage": stored.URL,
	})
}
