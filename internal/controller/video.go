package controller

import (
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
)

type VideoController struct {
	*baseController
}

// CreateVideo takes a youtube or vimeo url as JSON, or a multipart "file" upload.
func (vc VideoController) CreateVideo(ctx *gin.Context) {
	type Request struct {
		VideoURL    string  `json:"videoUrl" form:"videoUrl" binding:"omitempty,url"`
		Title       *string `json:"title" form:"title" binding:"omitempty,cmax=200"`
		Description *string `json:"description" form:"description" binding:"omitempty,cmax=2000"`
	}
	var body Request

	projectID := ctx.Param("projectId")
	if err := ctx.ShouldBind(&body); err != nil {
		vc.badRequest(ctx, err, "Invalid request", "video")
		return
	}

	if _, err := vc.app.Repository.Project.GetById(ctx, nil, projectID); err != nil {
		vc.fail(ctx, err, "Project not found", "projectId")
		return
	}

	in := repository.VideoInput{
		Title:       body.Title,
		Description: body.Description,
	}

	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fh, err := ctx.FormFile("file")
		if err != nil {
			vc.badRequest(ctx, err, "No video uploaded", "file")
			return
		}

		stored, err := vc.storeVideo(ctx, fh, util.GetProjectVideoDirectoryPath(projectID), constant.MaxVideoUploadSize)
		if err != nil {
			vc.fail(ctx, err, "Failed to upload video", "file")
			return
		}
		in.VideoURL = stored.URL
		in.StoragePath = stored.ObjectPath
		in.VideoType = portfolio.VideoTypeUpload
	} else {
		videoType, err := portfolio.DetectVideoType(body.VideoURL)
		if err != nil {
			vc.badRequest(ctx, err, "Only youtube and vimeo links are supported", "videoUrl")
			return
		}
		in.VideoURL = body.VideoURL
		in.VideoType = videoType
	}

	video, err := vc.app.Repository.Video.Create(ctx, nil, projectID, in)
	if err != nil {
		if in.StoragePath != "" {
			if rmErr := vc.app.Storage.Remove(ctx, in.StoragePath); rmErr != nil {
				vc.app.Logger.Warnw("Failed to remove orphaned video", "path", in.StoragePath, "error", rmErr)
			}
		}
		vc.fail(ctx, err, "Failed to save video", "video")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"video": video.ToPortfolio(),
	})
}

func (vc VideoController) UpdateVideo(ctx *gin.Context) {
	type Request struct {
		Title       *string `json:"title" binding:"omitempty,cmax=200"`
		Description *string `json:"description" binding:"omitempty,cmax=2000"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		vc.badRequest(ctx, err, "Invalid request", "video")
		return
	}

	video, err := vc.app.Repository.Video.Update(ctx, nil, ctx.Param("projectId"), ctx.Param("videoId"), body.Title, body.Description)
	if err != nil {
		vc.fail(ctx, err, "Failed to update video", "videoId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"video": video.ToPortfolio(),
	})
}

func (vc VideoController) DeleteVideo(ctx *gin.Context) {
	if err := vc.app.Repository.Video.Delete(ctx, nil, ctx.Param("projectId"), ctx.Param("videoId")); err != nil {
		vc.fail(ctx, err, "Failed to delete video", "videoId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": true,
	})
}

func (vc VideoController) ReorderVideos(ctx *gin.Context) {
	var body reorderRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		vc.badRequest(ctx, err, "Invalid request", "reorder")
		return
	}

	positions, err := vc.app.Repository.Video.Reorder(ctx, nil, ctx.Param("projectId"), *body.From, *body.To)
	vc.respondOrder(ctx, positions, err)
}

func (vc VideoController) SwapVideo(ctx *gin.Context) {
	var body swapRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		vc.badRequest(ctx, err, "Invalid request", "direction")
		return
	}

	dir, err := portfolio.ParseDirection(body.Direction)
	if err != nil {
		vc.badRequest(ctx, err, "Invalid direction", "direction")
		return
	}

	positions, err := vc.app.Repository.Video.Swap(ctx, nil, ctx.Param("projectId"), ctx.Param("videoId"), dir)
	vc.respondOrder(ctx, positions, err)
}
