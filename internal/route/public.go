package route

import (
	"github.com/SeakMengs/RenovaSite/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Public(r *gin.RouterGroup, pc *controller.PublicController, cc *controller.ContactController) {
	v1 := r.Group("/v1")
	{
		v1.GET("/projects", pc.ListProjects)
		v1.GET("/projects/:slug", pc.GetProject)
		v1.GET("/projects/:slug/qr", pc.ProjectQRCode)
		v1.GET("/categories", pc.ListCategories)
		v1.GET("/settings", pc.GetSettings)
		v1.POST("/contact", cc.SendContactMessage)
	}
}
