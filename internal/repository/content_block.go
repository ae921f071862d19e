package repository

import (
	"context"

	constant "github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/gorm"
)

type ContentBlockRepository struct {
	*baseRepository
	order *OrderRepository
}

func (cbr ContentBlockRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectID string) ([]model.ContentBlock, error) {
	cbr.logger.Debugf("List content blocks of project: %s \n", projectID)

	db := cbr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	blocks := []model.ContentBlock{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("order_index").Order("created_at").Order("id").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListDecoded is ListByProject with every payload decoded for rendering.
func (cbr ContentBlockRepository) ListDecoded(ctx context.Context, tx *gorm.DB, projectID string) ([]portfolio.Block, error) {
	rows, err := cbr.ListByProject(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	return cbr.decodeBlocks(rows), nil
}

func (cbr ContentBlockRepository) positions(ctx context.Context, db *gorm.DB, projectID string) ([]portfolio.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var blocks []model.ContentBlock
	if err := db.WithContext(ctx).Select("id", "order_index", "created_at").
		Where("project_id = ?", projectID).
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	out := make([]portfolio.Position, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Position())
	}
	return out, nil
}

func (cbr ContentBlockRepository) GetById(ctx context.Context, tx *gorm.DB, projectID string, blockID string) (*model.ContentBlock, error) {
	cbr.logger.Debugf("Get content block %s of project %s \n", blockID, projectID)

	db := cbr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var block model.ContentBlock
	if err := db.WithContext(ctx).Where("id = ? AND project_id = ?", blockID, projectID).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// Create validates content against blockType and appends the block after the last one.
func (cbr ContentBlockRepository) Create(ctx context.Context, tx *gorm.DB, projectID string, blockType portfolio.BlockType, raw []byte) (*model.ContentBlock, error) {
	cbr.logger.Debugf("Create %s content block for project %s \n", blockType, projectID)

	content, err := portfolio.ParseContent(blockType, raw)
	if err != nil {
		return nil, err
	}
	encoded, err := portfolio.EncodeContent(content)
	if err != nil {
		return nil, err
	}

	db := cbr.getDB(tx)
	positions, err := cbr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	block := model.ContentBlock{
		ProjectID:  projectID,
		BlockType:  string(blockType),
		Content:    encoded,
		OrderIndex: portfolio.NextOrderIndex(positions),
	}
	if err := db.WithContext(ctx).Create(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// Update replaces the payload. The block type is fixed at creation.
func (cbr ContentBlockRepository) Update(ctx context.Context, tx *gorm.DB, projectID string, blockID string, raw []byte) (*model.ContentBlock, error) {
	cbr.logger.Debugf("Update content block %s of project %s \n", blockID, projectID)

	db := cbr.getDB(tx)
	block, err := cbr.GetById(ctx, db, projectID, blockID)
	if err != nil {
		return nil, err
	}

	content, err := portfolio.ParseContent(portfolio.BlockType(block.BlockType), raw)
	if err != nil {
		return nil, err
	}
	encoded, err := portfolio.EncodeContent(content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	block.Content = encoded
	if err := db.WithContext(ctx).Model(block).Select("content", "updated_at").Updates(block).Error; err != nil {
		return nil, err
	}
	return block, nil
}

// Delete removes the block and renumbers the remaining ones to 0..n-1.
func (cbr ContentBlockRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string, blockID string) error {
	cbr.logger.Debugf("Delete content block %s of project %s \n", blockID, projectID)

	db := cbr.getDB(tx)
	if err := func() error {
		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		res := db.WithContext(ctx).Delete(&model.ContentBlock{}, "id = ? AND project_id = ?", blockID, projectID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}(); err != nil {
		return err
	}

	positions, err := cbr.positions(ctx, db, projectID)
	if err != nil {
		return err
	}

	return cbr.order.ApplyOrder(ctx, db, &model.ContentBlock{}, changedPositions(positions, portfolio.Resequence(positions)))
}

func (cbr ContentBlockRepository) Reorder(ctx context.Context, tx *gorm.DB, projectID string, from, to int) ([]portfolio.Position, error) {
	cbr.logger.Debugf("Reorder content blocks of project %s from %d to %d \n", projectID, from, to)

	db := cbr.getDB(tx)
	positions, err := cbr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	moved, err := portfolio.Move(positions, from, to)
	if err != nil {
		return nil, err
	}

	return moved, cbr.order.ApplyOrder(ctx, db, &model.ContentBlock{}, changedPositions(positions, moved))
}

func (cbr ContentBlockRepository) Swap(ctx context.Context, tx *gorm.DB, projectID string, blockID string, dir portfolio.Direction) ([]portfolio.Position, error) {
	cbr.logger.Debugf("Swap content block %s of project %s in direction %d \n", blockID, projectID, dir)

	db := cbr.getDB(tx)
	positions, err := cbr.positions(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	swapped, err := portfolio.Swap(positions, blockID, dir)
	if err != nil {
		return nil, err
	}

	return swapped, cbr.order.ApplyOrder(ctx, db, &model.ContentBlock{}, swapped)
}
