package controller

import (
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
)

type SiteSettingsController struct {
	*baseController
}

type siteSettingsRequest struct {
	CompanyName      string            `json:"companyName" binding:"required,strNotEmpty,cmax=200"`
	Phone            string            `json:"phone" binding:"cmax=50"`
	Email            string            `json:"email" binding:"omitempty,email"`
	Address          string            `json:"address" binding:"cmax=500"`
	Whatsapp         string            `json:"whatsapp" binding:"cmax=50"`
	FacebookURL      string            `json:"facebookUrl" binding:"omitempty,url"`
	InstagramURL     string            `json:"instagramUrl" binding:"omitempty,url"`
	LinkedinURL      string            `json:"linkedinUrl" binding:"omitempty,url"`
	YoutubeURL       string            `json:"youtubeUrl" binding:"omitempty,url"`
	PrivacyPolicyURL string            `json:"privacyPolicyUrl" binding:"cmax=500"`
	TermsURL         string            `json:"termsUrl" binding:"cmax=500"`
	ServicesList     []string          `json:"servicesList" binding:"omitempty,dive,strNotEmpty,cmax=100"`
	QuickLinksList   []model.QuickLink `json:"quickLinksList" binding:"omitempty,dive"`
}

func (r siteSettingsRequest) toModel() model.SiteSettings {
	return model.SiteSettings{
		CompanyName:      strings.TrimSpace(r.CompanyName),
		Phone:            strings.TrimSpace(r.Phone),
		Email:            strings.TrimSpace(r.Email),
		Address:          strings.TrimSpace(r.Address),
		Whatsapp:         strings.TrimSpace(r.Whatsapp),
		FacebookURL:      r.FacebookURL,
		InstagramURL:     r.InstagramURL,
		LinkedinURL:      r.LinkedinURL,
		YoutubeURL:       r.YoutubeURL,
		PrivacyPolicyURL: strings.TrimSpace(r.PrivacyPolicyURL),
		TermsURL:         strings.TrimSpace(r.TermsURL),
		ServicesList:     r.ServicesList,
		QuickLinksList:   r.QuickLinksList,
	}
}

func (sc SiteSettingsController) GetSettings(ctx *gin.Context) {
	settings, err := sc.app.Repository.SiteSettings.Get(ctx, nil)
	if err != nil {
		sc.fail(ctx, err, "Failed to get site settings", "settings")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"settings": settings,
	})
}

func (sc SiteSettingsController) UpdateSettings(ctx *gin.Context) {
	var body siteSettingsRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sc.badRequest(ctx, err, "Invalid request", "settings")
		return
	}

	settings, err := sc.app.Repository.SiteSettings.Update(ctx, nil, body.toModel())
	if err != nil {
		sc.fail(ctx, err, "Failed to update site settings", "settings")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"settings": settings,
	})
}
