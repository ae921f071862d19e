package model

import "github.com/SeakMengs/RenovaSite/pkg/portfolio"

type ProjectImage struct {
	BaseModel
	ProjectID string `gorm:"type:text;not null;index:idx_project_images_partition,priority:1" json:"projectId"`
	ImageURL  string `gorm:"type:text;not null" json:"imageUrl"`
	// Object key when the image was uploaded here.
	StoragePath string  `gorm:"type:text;not null;default:''" json:"-"`
	ImageType   string  `gorm:"type:varchar(20);not null;index:idx_project_images_partition,priority:2" json:"imageType"`
	Caption     *string `gorm:"type:text" json:"caption"`
	OrderIndex  int     `gorm:"not null" json:"orderIndex"`
	Width       int     `gorm:"not null;default:0" json:"width"`
	Height      int     `gorm:"not null;default:0" json:"height"`
}

func (pi ProjectImage) TableName() string {
	return "project_images"
}

func (pi ProjectImage) ToPortfolio() portfolio.Image {
	return portfolio.Image{
		ID:         pi.ID,
		ProjectID:  pi.ProjectID,
		URL:        pi.ImageURL,
		Type:       portfolio.ImageType(pi.ImageType),
		Caption:    pi.Caption,
		OrderIndex: pi.OrderIndex,
		Width:      pi.Width,
		Height:     pi.Height,
		CreatedAt:  pi.CreatedAt,
	}
}

func ProjectImagesToPortfolio(images []ProjectImage) []portfolio.Image {
	out := make([]portfolio.Image, 0, len(images))
	for _, img := range images {
		out = append(out, img.ToPortfolio())
	}
	return out
}
