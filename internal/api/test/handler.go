package test

import (
	"net/http"

	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// PingResponse defines the structure of the ping response
type PingResponse struct {
	Message string `json:"message"`
}

// PingHandler godoc
// @Summary      Health check
// @Description  Returns pong when the service is up.
// @Tags         test
// @Produce      json
// @Success      200 {object} utils.Response{data=PingResponse}
// @Router       /ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("pong", PingResponse{Message: "pong"}))
}
