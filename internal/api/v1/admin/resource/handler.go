package resource

import (
	"net/http"
	"strconv"

	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest switches a resource between active and hidden
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active hidden"`
}

// ListResources godoc
// @Summary List all resources
// @Description Get a paginated list of resources regardless of status. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status: active or hidden"
// @Param owner_id query int false "Filter by owner"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/resources [get]
func ListResources(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := services.ResourceFilter{
		Page:  page,
		Limit: limit,
	}

	if statusStr, exists := c.GetQuery("status"); exists {
		status := models.ResourceStatus(statusStr)
		if status != models.ResourceStatusActive && status != models.ResourceStatusHidden {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid status"))
			return
		}
		filter.Status = &status
	}

	if ownerStr, exists := c.GetQuery("owner_id"); exists {
		ownerID, err := strconv.Atoi(ownerStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid owner_id"))
			return
		}
		oid := uint(ownerID)
		filter.OwnerID = &oid
	}

	resources, total, err := services.FindResources(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch resources"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Resources retrieved successfully", gin.H{
		"resources": resources,
		"total":     total,
		"page":      page,
		"limit":     limit,
	}))
}

// UpdateResourceStatus godoc
// @Summary Hide or restore a resource
// @Description Switch a resource between active and hidden. Hiding never deletes the row, so settled downloads stay intact. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Resource ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.Response{data=models.Resource}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/resources/{id}/status [patch]
func UpdateResourceStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid resource ID"))
		return
	}

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res, err := services.UpdateResourceStatus(uint(id), models.ResourceStatus(req.Status))
	if err != nil {
		if err == services.ErrResourceNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Resource not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update resource status"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Resource status updated successfully", res))
}
