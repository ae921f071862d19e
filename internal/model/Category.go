package model

type Category struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name" form:"name"`
	Slug        string  `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug" form:"slug"`
	Description *string `gorm:"type:text" json:"description" form:"description"`
}

func (c Category) TableName() string {
	return "categories"
}
