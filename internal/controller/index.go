package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"message": "Welcome to the api",
	})
}

// Healthz pings the database. Storage and cache are optional and not checked.
func (ic IndexController) Healthz(ctx *gin.Context) {
	sqlDB, err := ic.app.Repository.DB.DB()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Database unavailable", util.GenerateErrorMessages(err, "database"), nil)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		ic.app.Logger.Warnw("Health check failed", "error", err)
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Database unavailable", util.GenerateErrorMessages(err, "database"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"status": "ok"})
}
