package route

import (
	"github.com/SeakMengs/RenovaSite/internal/controller"
	"github.com/SeakMengs/RenovaSite/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Admin(r *gin.RouterGroup, c *controller.Controller, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/admin")
	v1.Use(middleware.AuthMiddleware, middleware.AdminMiddleware)
	{
		v1.GET("/dashboard", c.Dashboard.GetStats)

		v1.GET("/settings", c.SiteSettings.GetSettings)
		v1.PUT("/settings", c.SiteSettings.UpdateSettings)
	}

	V1_AdminProjects(v1, c)
	V1_AdminCategories(v1, c.Category)
}

func V1_AdminProjects(admin *gin.RouterGroup, c *controller.Controller) {
	projects := admin.Group("/projects")
	{
		projects.GET("", c.Project.ListProjects)
		projects.POST("", c.Project.CreateProject)
		projects.GET("/slug-available", c.Project.SlugAvailable)
		projects.GET("/:projectId", c.Project.GetProject)
		projects.PUT("/:projectId", c.Project.UpdateProject)
		projects.DELETE("/:projectId", c.Project.DeleteProject)
		projects.PATCH("/:projectId/publish", c.Project.SetPublished)
		projects.POST("/:projectId/cover", c.Project.UploadCover)
	}

	images := projects.Group("/:projectId/images")
	{
		images.POST("", c.Image.CreateImages)
		images.POST("/reorder", c.Image.ReorderImages)
		images.PATCH("/:imageId", c.Image.UpdateImage)
		images.DELETE("/:imageId", c.Image.DeleteImage)
		images.POST("/:imageId/swap", c.Image.SwapImage)
	}

	videos := projects.Group("/:projectId/videos")
	{
		videos.POST("", c.Video.CreateVideo)
		videos.POST("/reorder", c.Video.ReorderVideos)
		videos.PATCH("/:videoId", c.Video.UpdateVideo)
		videos.DELETE("/:videoId", c.Video.DeleteVideo)
		videos.POST("/:videoId/swap", c.Video.SwapVideo)
	}

	blocks := projects.Group("/:projectId/blocks")
	{
		blocks.GET("", c.ContentBlock.ListBlocks)
		blocks.POST("", c.ContentBlock.CreateBlock)
		blocks.POST("/reorder", c.ContentBlock.ReorderBlocks)
		blocks.PUT("/:blockId", c.ContentBlock.UpdateBlock)
		blocks.DELETE("/:blockId", c.ContentBlock.DeleteBlock)
		blocks.POST("/:blockId/swap", c.ContentBlock.SwapBlock)
	}
}

func V1_AdminCategories(admin *gin.RouterGroup, cc *controller.CategoryController) {
	categories := admin.Group("/categories")
	{
		categories.GET("", cc.ListCategories)
		categories.POST("", cc.CreateCategory)
		categories.GET("/:categoryId", cc.GetCategory)
		categories.PUT("/:categoryId", cc.UpdateCategory)
		categories.DELETE("/:categoryId", cc.DeleteCategory)
	}
}
