package controller

import (
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	*baseController
}

func (dc DashboardController) GetStats(ctx *gin.Context) {
	stats, err := dc.app.Repository.Dashboard.Stats(ctx, nil)
	if err != nil {
		dc.fail(ctx, err, "Failed to get dashboard stats", "dashboard")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"stats":          stats,
		"recentProjects": projectListItems(stats.RecentProjects),
	})
}
