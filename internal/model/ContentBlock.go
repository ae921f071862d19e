package model

import (
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/datatypes"
)

type ContentBlock struct {
	BaseModel
	ProjectID  string         `gorm:"type:text;not null;index" json:"projectId"`
	BlockType  string         `gorm:"type:varchar(30);not null" json:"blockType"`
	Content    datatypes.JSON `gorm:"not null" json:"content"`
	OrderIndex int            `gorm:"not null" json:"orderIndex"`
}

func (cb ContentBlock) TableName() string {
	return "project_content_blocks"
}

// ToPortfolio decodes the stored payload. Unknown block types become a placeholder
// rather than an error; a known type with a corrupt payload is an error.
func (cb ContentBlock) ToPortfolio() (portfolio.Block, error) {
	t := portfolio.BlockType(cb.BlockType)
	content, err := portfolio.DecodeContent(t, cb.Content)
	if err != nil {
		return portfolio.Block{}, err
	}

	return portfolio.Block{
		ID:         cb.ID,
		Type:       t,
		Content:    content,
		OrderIndex: cb.OrderIndex,
		Supported:  t.IsValid(),
	}, nil
}

func (cb ContentBlock) Position() portfolio.Position {
	return portfolio.Position{ID: cb.ID, OrderIndex: cb.OrderIndex, CreatedAt: cb.CreatedAt}
}
