package model

import "github.com/SeakMengs/RenovaSite/pkg/portfolio"

type ProjectVideo struct {
	BaseModel
	ProjectID   string  `gorm:"type:text;not null;index" json:"projectId"`
	VideoURL    string  `gorm:"type:text;not null" json:"videoUrl"`
	StoragePath string  `gorm:"type:text;not null;default:''" json:"-"`
	VideoType   string  `gorm:"type:varchar(20);not null" json:"videoType"`
	Title       *string `gorm:"type:varchar(200)" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	OrderIndex  int     `gorm:"not null" json:"orderIndex"`
}

func (pv ProjectVideo) TableName() string {
	return "project_videos"
}

func (pv ProjectVideo) ToPortfolio() portfolio.Video {
	t := portfolio.VideoType(pv.VideoType)
	return portfolio.Video{
		ID:          pv.ID,
		ProjectID:   pv.ProjectID,
		URL:         pv.VideoURL,
		EmbedURL:    portfolio.EmbedURL(t, pv.VideoURL),
		Type:        t,
		Title:       pv.Title,
		Description: pv.Description,
		OrderIndex:  pv.OrderIndex,
		CreatedAt:   pv.CreatedAt,
	}
}

func ProjectVideosToPortfolio(videos []ProjectVideo) []portfolio.Video {
	out := make([]portfolio.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.ToPortfolio())
	}
	return out
}
