package controller

import (
	"encoding/json"

	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type ContentBlockController struct {
	*baseController
}

type blockItem struct {
	portfolio.Block
	Summary string `json:"summary"`
}

func toBlockItem(block portfolio.Block) blockItem {
	return blockItem{Block: block, Summary: portfolio.Summary(block.Content)}
}

// blockOf decodes a freshly written row. Writes are validated, so this does not fail in practice.
func (cbc ContentBlockController) blockOf(ctx *gin.Context, row *model.ContentBlock) (blockItem, bool) {
	block, err := row.ToPortfolio()
	if err != nil {
		cbc.fail(ctx, err, "Failed to decode content block", "content")
		return blockItem{}, false
	}
	return toBlockItem(block), true
}

func (cbc ContentBlockController) ListBlocks(ctx *gin.Context) {
	blocks, err := cbc.app.Repository.ContentBlock.ListDecoded(ctx, nil, ctx.Param("projectId"))
	if err != nil {
		cbc.fail(ctx, err, "Failed to list content blocks", "blocks")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"blocks": lo.Map(blocks, func(b portfolio.Block, _ int) blockItem {
			return toBlockItem(b)
		}),
	})
}

func (cbc ContentBlockController) CreateBlock(ctx *gin.Context) {
	type Request struct {
		BlockType string          `json:"blockType" binding:"required,blockType"`
		Content   json.RawMessage `json:"content" binding:"required"`
	}
	var body Request

	projectID := ctx.Param("projectId")
	if err := ctx.ShouldBindJSON(&body); err != nil {
		cbc.badRequest(ctx, err, "Invalid request", "blockType")
		return
	}

	if _, err := cbc.app.Repository.Project.GetById(ctx, nil, projectID); err != nil {
		cbc.fail(ctx, err, "Project not found", "projectId")
		return
	}

	row, err := cbc.app.Repository.ContentBlock.Create(ctx, nil, projectID, portfolio.BlockType(body.BlockType), body.Content)
	if err != nil {
		cbc.fail(ctx, err, "Failed to create content block", "content")
		return
	}

	item, ok := cbc.blockOf(ctx, row)
	if !ok {
		return
	}
	util.ResponseSuccess(ctx, gin.H{
		"block": item,
	})
}

func (cbc ContentBlockController) UpdateBlock(ctx *gin.Context) {
	type Request struct {
		Content json.RawMessage `json:"content" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		cbc.badRequest(ctx, err, "Invalid request", "content")
		return
	}

	row, err := cbc.app.Repository.ContentBlock.Update(ctx, nil, ctx.Param("projectId"), ctx.Param("blockId"), body.Content)
	if err != nil {
		cbc.fail(ctx, err, "Failed to update content block", "content")
		return
	}

	item, ok := cbc.blockOf(ctx, row)
	if !ok {
		return
	}
	util.ResponseSuccess(ctx, gin.H{
		"block": item,
	})
}

func (cbc ContentBlockController) DeleteBlock(ctx *gin.Context) {
	if err := cbc.app.Repository.ContentBlock.Delete(ctx, nil, ctx.Param("projectId"), ctx.Param("blockId")); err != nil {
		cbc.fail(ctx, err, "Failed to delete content block", "blockId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": true,
	})
}

func (cbc ContentBlockController) ReorderBlocks(ctx *gin.Context) {
	var body reorderRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		cbc.badRequest(ctx, err, "Invalid request", "reorder")
		return
	}

	positions, err := cbc.app.Repository.ContentBlock.Reorder(ctx, nil, ctx.Param("projectId"), *body.From, *body.To)
	cbc.respondOrder(ctx, positions, err)
}

func (cbc ContentBlockController) SwapBlock(ctx *gin.Context) {
	var body swapRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		cbc.badRequest(ctx, err, "Invalid request", "direction")
		return
	}

	dir, err := portfolio.ParseDirection(body.Direction)
	if err != nil {
		cbc.badRequest(ctx, err, "Invalid direction", "direction")
		return
	}

	positions, err := cbc.app.Repository.ContentBlock.Swap(ctx, nil, ctx.Param("projectId"), ctx.Param("blockId"), dir)
	cbc.respondOrder(ctx, positions, err)
}
