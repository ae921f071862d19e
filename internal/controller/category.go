package controller

import (
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	*baseController
}

type categoryRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
	Slug        string  `json:"slug" form:"slug" binding:"omitempty,slug"`
	Description *string `json:"description" form:"description" binding:"omitempty,cmax=1000"`
}

func (r categoryRequest) toInput() repository.CategoryInput {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		slug = portfolio.Slugify(r.Name)
	}
	return repository.CategoryInput{
		Name:        strings.TrimSpace(r.Name),
		Slug:        slug,
		Description: r.Description,
	}
}

func (cc CategoryController) bindCategory(ctx *gin.Context) (repository.CategoryInput, bool) {
	var body categoryRequest
	if err := ctx.ShouldBind(&body); err != nil {
		cc.badRequest(ctx, err, "Invalid request", "category")
		return repository.CategoryInput{}, false
	}
	return body.toInput(), true
}

func (cc CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := cc.app.Repository.Category.List(ctx, nil)
	if err != nil {
		cc.fail(ctx, err, "Failed to list categories", "categories")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"categories": categories,
	})
}

func (cc CategoryController) GetCategory(ctx *gin.Context) {
	category, err := cc.app.Repository.Category.GetById(ctx, nil, ctx.Param("categoryId"))
	if err != nil {
		cc.fail(ctx, err, "Category not found", "categoryId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"category": category,
	})
}

func (cc CategoryController) CreateCategory(ctx *gin.Context) {
	in, ok := cc.bindCategory(ctx)
	if !ok {
		return
	}

	category, err := cc.app.Repository.Category.Create(ctx, nil, in)
	if err != nil {
		cc.fail(ctx, err, "Failed to create category", "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"category": category,
	})
}

// UpdateCategory also rewrites the category name shown on its projects.
func (cc CategoryController) UpdateCategory(ctx *gin.Context) {
	in, ok := cc.bindCategory(ctx)
	if !ok {
		return
	}

	category, err := cc.app.Repository.Category.Update(ctx, nil, ctx.Param("categoryId"), in)
	if err != nil {
		cc.fail(ctx, err, "Failed to update category", "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"category": category,
	})
}

// DeleteCategory keeps the projects and leaves them uncategorized.
func (cc CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := cc.app.Repository.Category.Delete(ctx, nil, ctx.Param("categoryId")); err != nil {
		cc.fail(ctx, err, "Failed to delete category", "categoryId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": true,
	})
}
