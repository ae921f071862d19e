package model

import (
	"fmt"
	"time"

	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"gorm.io/datatypes"
)

type Project struct {
	BaseModel
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string  `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	Category    string  `gorm:"type:varchar(100);not null;default:''" json:"category"`
	CategoryID  *string `gorm:"type:text;index" json:"categoryId"`
	Location    string  `gorm:"type:varchar(200);not null;default:''" json:"location"`
	Description string  `gorm:"type:text;not null;default:''" json:"description"`
	CoverImage  string  `gorm:"type:text;not null;default:''" json:"coverImage"`
	// Object key of an uploaded cover. Empty when CoverImage points elsewhere.
	CoverImagePath string                      `gorm:"type:text;not null;default:''" json:"-"`
	Client         string                      `gorm:"type:varchar(200);not null;default:''" json:"client"`
	CompletionDate *time.Time                  `json:"completionDate"`
	Area           string                      `gorm:"type:varchar(100);not null;default:''" json:"area"`
	BudgetRange    string                      `gorm:"type:varchar(100);not null;default:''" json:"budgetRange"`
	Materials      datatypes.JSONMap           `json:"materials"`
	Features       datatypes.JSONSlice[string] `json:"features"`
	Published      bool                        `gorm:"not null;default:false;index" json:"published"`

	// Category is a cached copy of CategoryRef.Name.
	CategoryRef *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Images []ProjectImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Videos []ProjectVideo `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Blocks []ContentBlock `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (p Project) TableName() string {
	return "projects"
}

func (p Project) ToPortfolio() portfolio.Project {
	materials := make(map[string]string, len(p.Materials))
	for k, v := range p.Materials {
		if s, ok := v.(string); ok {
			materials[k] = s
			continue
		}
		materials[k] = fmt.Sprint(v)
	}

	features := make([]string, 0, len(p.Features))
	features = append(features, p.Features...)

	return portfolio.Project{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Category:       p.Category,
		CategoryID:     p.CategoryID,
		Location:       p.Location,
		Description:    p.Description,
		CoverImage:     p.CoverImage,
		Client:         p.Client,
		CompletionDate: p.CompletionDate,
		Area:           p.Area,
		BudgetRange:    p.BudgetRange,
		Materials:      materials,
		Features:       features,
		Published:      p.Published,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func MaterialsToJSONMap(materials map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(materials))
	for k, v := range materials {
		out[k] = v
	}
	return out
}

func FeaturesToJSONSlice(features []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(features))
	return append(out, features...)
}
