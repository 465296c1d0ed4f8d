package achievement

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/achievements", ListAchievements)
	router.POST("/achievements", CreateAchievement)
}
