package leaderboard

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", GetLeaderboard)
}
