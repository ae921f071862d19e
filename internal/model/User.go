package model

import "github.com/SeakMengs/RenovaSite/internal/constant"

type User struct {
	BaseModel
	Email      string            `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	FirstName  string            `gorm:"type:varchar(60);not null;" json:"firstName" form:"firstName" binding:"required"`
	LastName   string            `gorm:"type:varchar(60);not null;" json:"lastName" form:"lastName"`
	ProfileURL string            `gorm:"type:text;default:null" json:"profileURL" form:"profileURL"`
	Role       constant.UserRole `gorm:"type:varchar(20);not null;default:user" json:"role" form:"role"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) IsAdmin() bool {
	return u.Role == constant.UserRoleAdmin
}
