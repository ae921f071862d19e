package model

import (
	"time"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"gorm.io/datatypes"
)

type QuickLink struct {
	Name string `json:"name" binding:"strNotEmpty,cmax=60"`
	Href string `json:"href" binding:"strNotEmpty,cmax=300"`
}

// SiteSettings is a single row table keyed by constant.SITE_SETTINGS_ID.
type SiteSettings struct {
	ID               string                         `gorm:"type:text;primaryKey" json:"id"`
	CompanyName      string                         `gorm:"type:varchar(200);not null;default:''" json:"companyName"`
	Phone            string                         `gorm:"type:varchar(50);not null;default:''" json:"phone"`
	Email            string                         `gorm:"type:varchar(200);not null;default:''" json:"email"`
	Address          string                         `gorm:"type:text;not null;default:''" json:"address"`
	Whatsapp         string                         `gorm:"type:varchar(50);not null;default:''" json:"whatsapp"`
	FacebookURL      string                         `gorm:"type:text;not null;default:''" json:"facebookUrl"`
	InstagramURL     string                         `gorm:"type:text;not null;default:''" json:"instagramUrl"`
	LinkedinURL      string                         `gorm:"type:text;not null;default:''" json:"linkedinUrl"`
	YoutubeURL       string                         `gorm:"type:text;not null;default:''" json:"youtubeUrl"`
	PrivacyPolicyURL string                         `gorm:"type:text;not null;default:''" json:"privacyPolicyUrl"`
	TermsURL         string                         `gorm:"type:text;not null;default:''" json:"termsUrl"`
	ServicesList     datatypes.JSONSlice[string]    `json:"servicesList"`
	QuickLinksList   datatypes.JSONSlice[QuickLink] `json:"quickLinksList"`
	UpdatedAt        time.Time                      `json:"updatedAt"`
}

func (s SiteSettings) TableName() string {
	return "site_settings"
}

// DefaultSiteSettings is served until an admin saves the settings for the first time.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:           constant.SITE_SETTINGS_ID,
		CompanyName:  "Renova Construcciones",
		Phone:        "+34 900 000 000",
		Email:        "info@renova.example",
		Address:      "Calle Mayor 1, Madrid",
		Whatsapp:     "+34600000000",
		ServicesList: datatypes.JSONSlice[string]{"Reformas integrales", "Cocinas", "Baños", "Fachadas", "Obra nueva"},
		QuickLinksList: datatypes.JSONSlice[QuickLink]{
			{Name: "Proyectos", Href: "/#proyectos"},
			{Name: "Servicios", Href: "/#servicios"},
			{Name: "Contacto", Href: "/#contacto"},
		},
		PrivacyPolicyURL: "/politica-de-privacidad",
		TermsURL:         "/terminos-de-servicio",
	}
}
