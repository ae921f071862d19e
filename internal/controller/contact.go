package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/SeakMengs/RenovaSite/internal/queue"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	*baseController
}

// SendContactMessage forwards the contact form to the company email from site settings,
// falling back to MAIL_CONTACT_TO.
func (cc ContactController) SendContactMessage(ctx *gin.Context) {
	type Request struct {
		Name    string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=120"`
		Email   string `json:"email" form:"email" binding:"required,email,cmax=200"`
		Phone   string `json:"phone" form:"phone" binding:"omitempty,cmax=50"`
		Message string `json:"message" form:"message" binding:"required,strNotEmpty,cmax=5000"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		cc.badRequest(ctx, err, "Invalid request", "contact")
		return
	}

	if cc.app.MailDispatcher == nil {
		cc.app.Metrics.ContactMessage("unavailable")
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Contact form is not available", util.GenerateErrorMessages(errors.New("no mail dispatcher configured"), "contact"), nil)
		return
	}

	settings, err := cc.app.Repository.SiteSettings.Get(ctx, nil)
	if err != nil {
		cc.app.Metrics.ContactMessage("failed")
		cc.fail(ctx, err, "Failed to get site settings", "settings")
		return
	}

	to := settings.Email
	if to == "" {
		to = cc.app.Config.Mail.CONTACT_TO
	}
	if to == "" {
		cc.app.Metrics.ContactMessage("unavailable")
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Contact form is not available", util.GenerateErrorMessages(errors.New("no contact email configured"), "contact"), nil)
		return
	}

	job, err := queue.NewContactMessageMailJob(settings.CompanyName, to, mailer.ContactMessageData{
		CompanyName: settings.CompanyName,
		Name:        strings.TrimSpace(body.Name),
		Email:       strings.TrimSpace(body.Email),
		Phone:       strings.TrimSpace(body.Phone),
		Message:     strings.TrimSpace(body.Message),
		SentAt:      time.Now().Format("02/01/2006 15:04"),
	})
	if err != nil {
		cc.app.Metrics.ContactMessage("failed")
		cc.fail(ctx, err, "Failed to prepare message", "contact")
		return
	}

	if err := cc.app.MailDispatcher.Dispatch(ctx, job); err != nil {
		cc.app.Metrics.ContactMessage("failed")
		cc.fail(ctx, err, "Failed to send message", "contact")
		return
	}

	cc.app.Metrics.ContactMessage("accepted")
	util.ResponseSuccess(ctx, gin.H{
		"sent": true,
	})
}
