package resource

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/resources", ListResources)
	router.PATCH("/resources/:id/status", UpdateResourceStatus)
}
