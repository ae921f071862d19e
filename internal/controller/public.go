package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/skip2/go-qrcode"
)

const (
	QR_CODE_SIZE     = 512
	QR_CODE_MAX_SIZE = 2048
)

// PublicController serves what the public site renders. Drafts are never visible here.
type PublicController struct {
	*baseController
}

func projectListItems(projects []model.Project) []portfolio.Project {
	return lo.Map(projects, func(p model.Project, _ int) portfolio.Project {
		return p.ToPortfolio()
	})
}

func projectDetail(view portfolio.ProjectView, blocks []portfolio.Block) gin.H {
	comparison := portfolio.ComparisonOf(view)
	return gin.H{
		"project":             view,
		"blocks":              blocks,
		"comparisons":         comparison.Pairs(),
		"comparisonAvailable": comparison.Available(),
	}
}

func (pc PublicController) ListProjects(ctx *gin.Context) {
	published := true
	filter := repository.ProjectFilter{
		Search:       ctx.Query("search"),
		CategorySlug: ctx.Query("category"),
		Published:    &published,
		Page:         queryUint(ctx, "page"),
		PageSize:     queryUint(ctx, "pageSize"),
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

func (pc PublicController) GetProject(ctx *gin.Context) {
	project, err := pc.app.Repository.Project.GetBySlug(ctx, nil, ctx.Param("slug"), true)
	if err != nil {
		pc.fail(ctx, err, "Project not found", "slug")
		return
	}

	view, blocks, err := pc.app.Repository.Project.Assemble(ctx, nil, project)
	if err != nil {
		pc.fail(ctx, err, "Failed to load project", "project")
		return
	}

	util.ResponseSuccess(ctx, projectDetail(view, blocks))
}

// ProjectQRCode renders a PNG linking to the public page of a published project.
func (pc PublicController) ProjectQRCode(ctx *gin.Context) {
	project, err := pc.app.Repository.Project.GetBySlug(ctx, nil, ctx.Param("slug"), true)
	if err != nil {
		pc.fail(ctx, err, "Project not found", "slug")
		return
	}

	size := QR_CODE_SIZE
	if s, err := strconv.Atoi(ctx.Query("size")); err == nil && s > 0 {
		size = min(s, QR_CODE_MAX_SIZE)
	}

	link := fmt.Sprintf("%s/proyecto/%s", pc.app.Config.FrontendURL, url.PathEscape(project.Slug))
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		pc.fail(ctx, err, "Failed to generate qr code", "qr")
		return
	}

	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Data(http.StatusOK, "image/png", png)
}

func (pc PublicController) ListCategories(ctx *gin.Context) {
	categories, err := pc.app.Repository.Category.List(ctx, nil)
	if err != nil {
		pc.fail(ctx, err, "Failed to list categories", "categories")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"categories": categories,
	})
}

func (pc PublicController) GetSettings(ctx *gin.Context) {
	settings, err := pc.app.Repository.SiteSettings.Get(ctx, nil)
	if err != nil {
		pc.fail(ctx, err, "Failed to get site settings", "settings")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"settings": settings,
	})
}
