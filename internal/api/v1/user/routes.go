package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.GET("/user", CurrentUser)

	users := router.Group("/users")
	users.PATCH("/me", UpdateProfile)
	users.GET("/me/settings", GetSettings)
	users.PUT("/me/settings", UpdateSettings)
}
