package resource

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	resources := router.Group("/resources")
	resources.GET("", ListResources)
	resources.POST("", CreateResource)
	resources.POST("/upload", UploadResource)
	resources.GET("/mine", MyResources)
	resources.GET("/:id", GetResource)
	resources.POST("/:id/download", DownloadResource)

	router.GET("/downloads", ListDownloads)
}
