package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// LeaderboardResponse pairs the ranked rows with the caller's own position
type LeaderboardResponse struct {
	Entries []services.LeaderboardEntry `json:"entries"`
	Me      *services.LeaderboardEntry  `json:"me,omitempty"`
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Get the top contributors ranked by lifetime coins earned, with the caller's own rank included
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param limit query int false "Number of rows" default(10)
// @Success 200 {object} utils.Response{data=leaderboard.LeaderboardResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /leaderboard [get]
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := services.GetLeaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve leaderboard"))
		return
	}

	resp := LeaderboardResponse{Entries: entries}

	if userVal, exists := c.Get("user"); exists {
		me := userVal.(models.User)
		if rank, err := services.GetUserRank(me.ID); err == nil {
			resp.Me = rank
		}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Leaderboard retrieved successfully", resp))
}
