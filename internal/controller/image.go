package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
)

type ImageController struct {
	*baseController
}

// UploadImages stores every file of the "files" field, one after another, and appends each
// to the end of its partition. A failing file stops the batch; earlier files stay uploaded.
func (ic ImageController) UploadImages(ctx *gin.Context) {
	type Request struct {
		ImageType string  `form:"imageType" binding:"required,imageType"`
		Caption   *string `form:"caption" binding:"omitempty,cmax=500"`
	}
	var body Request

	projectID := ctx.Param("projectId")

	if err := ctx.ShouldBind(&body); err != nil {
		ic.badRequest(ctx, err, "Invalid request", "imageType")
		return
	}

	if _, err := ic.app.Repository.Project.GetById(ctx, nil, projectID); err != nil {
		ic.fail(ctx, err, "Project not found", "projectId")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		ic.badRequest(ctx, errors.New("at least one image is required"), "No images uploaded", "files")
		return
	}

	caption := body.Caption
	if caption != nil && strings.TrimSpace(*caption) == "" {
		caption = nil
	}

	created := make([]portfolio.Image, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		stored, err := ic.storeImage(ctx, fh, util.GetProjectImageDirectoryPath(projectID), constant.MaxImageUploadSize)
		if err != nil {
			ic.fail(ctx, err, "Failed to upload "+fh.Filename, "files")
			return
		}

		image, err := ic.app.Repository.Image.Create(ctx, nil, projectID, repository.ImageInput{
			ImageURL:    stored.URL,
			StoragePath: stored.ObjectPath,
			ImageType:   portfolio.ImageType(body.ImageType),
			Caption:     caption,
			Width:       stored.Width,
			Height:      stored.Height,
		})
		if err != nil {
			if rmErr := ic.app.Storage.Remove(ctx, stored.ObjectPath); rmErr != nil {
				ic.app.Logger.Warnw("Failed to remove orphaned image", "path", stored.ObjectPath, "error", rmErr)
			}
			ic.fail(ctx, err, "Failed to save "+fh.Filename, "files")
			return
		}
		created = append(created, image.ToPortfolio())
	}

	util.ResponseSuccess(ctx, gin.H{
		"images": created,
	})
}

// AddImageByURL registers an image hosted elsewhere. Nothing is uploaded.
func (ic ImageController) AddImageByURL(ctx *gin.Context) {
	type Request struct {
		ImageURL  string  `json:"imageUrl" binding:"required,url"`
		ImageType string  `json:"imageType" binding:"required,imageType"`
		Caption   *string `json:"caption" binding:"omitempty,cmax=500"`
	}
	var body Request

	projectID := ctx.Param("projectId")
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ic.badRequest(ctx, err, "Invalid request", "imageUrl")
		return
	}

	if _, err := ic.app.Repository.Project.GetById(ctx, nil, projectID); err != nil {
		ic.fail(ctx, err, "Project not found", "projectId")
		return
	}

	image, err := ic.app.Repository.Image.Create(ctx, nil, projectID, repository.ImageInput{
		ImageURL:  body.ImageURL,
		ImageType: portfolio.ImageType(body.ImageType),
		Caption:   body.Caption,
	})
	if err != nil {
		ic.fail(ctx, err, "Failed to add image", "imageUrl")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"image": image.ToPortfolio(),
	})
}

// CreateImages accepts either a multipart upload or a JSON body with an external url.
func (ic ImageController) CreateImages(ctx *gin.Context) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		ic.UploadImages(ctx)
		return
	}
	ic.AddImageByURL(ctx)
}

func (ic ImageController) UpdateImage(ctx *gin.Context) {
	type Request struct {
		Caption   *string `json:"caption" binding:"omitempty,cmax=500"`
		ImageType string  `json:"imageType" binding:"omitempty,imageType"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ic.badRequest(ctx, err, "Invalid request", "image")
		return
	}

	image, err := ic.app.Repository.Image.Update(ctx, nil, ctx.Param("projectId"), ctx.Param("imageId"), body.Caption, portfolio.ImageType(body.ImageType))
	if err != nil {
		ic.fail(ctx, err, "Failed to update image", "imageId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"image": image.ToPortfolio(),
	})
}

func (ic ImageController) DeleteImage(ctx *gin.Context) {
	if err := ic.app.Repository.Image.Delete(ctx, nil, ctx.Param("projectId"), ctx.Param("imageId")); err != nil {
		ic.fail(ctx, err, "Failed to delete image", "imageId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": true,
	})
}

func (ic ImageController) ReorderImages(ctx *gin.Context) {
	type Request struct {
		reorderRequest
		ImageType string `json:"imageType" binding:"required,imageType"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ic.badRequest(ctx, err, "Invalid request", "reorder")
		return
	}

	positions, err := ic.app.Repository.Image.Reorder(ctx, nil, ctx.Param("projectId"), portfolio.ImageType(body.ImageType), *body.From, *body.To)
	ic.respondOrder(ctx, positions, err)
}

func (ic ImageController) SwapImage(ctx *gin.Context) {
	var body swapRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ic.badRequest(ctx, err, "Invalid request", "direction")
		return
	}

	dir, err := portfolio.ParseDirection(body.Direction)
	if err != nil {
		ic.badRequest(ctx, err, "Invalid direction", "direction")
		return
	}

	positions, err := ic.app.Repository.Image.Swap(ctx, nil, ctx.Param("projectId"), ctx.Param("imageId"), dir)
	ic.respondOrder(ctx, positions, err)
}

// respondOrder reports a reorder. When some rows failed to update the intended order is still
// returned so the client can retry.
func (b *baseController) respondOrder(ctx *gin.Context, positions []portfolio.Position, err error) {
	if err != nil && positions == nil {
		b.fail(ctx, err, "Failed to reorder", "order")
		return
	}
	if err != nil {
		b.app.Logger.Errorw("Reorder partially applied", "path", ctx.FullPath(), "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Order was only partially saved", util.GenerateErrorMessages(err, "order"), gin.H{
			"positions": positions,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"positions": positions,
	})
}
