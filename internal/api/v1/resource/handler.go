package resource

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Saimongu007/Breez/config"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
	"github.com/Saimongu007/Breez/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListResources godoc
// @Summary Browse the resource catalog
// @Description Get a paginated list of active resources with filtering and sorting
// @Tags resource
// @Produce json
// @Security Bearer
// @Param subject query string false "Filter by subject"
// @Param semester query string false "Filter by semester"
// @Param file_type query string false "Filter by file type"
// @Param free query bool false "Only free resources"
// @Param keyword query string false "Search in titles"
// @Param sort query string false "Sort order: latest, popular or price" default(latest)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=resource.ResourceListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /resources [get]
func ListResources(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	// Hidden resources never show up in the public catalog
	active := models.ResourceStatusActive
	filter := services.ResourceFilter{
		Subject:  c.Query("subject"),
		Semester: c.Query("semester"),
		FileType: c.Query("file_type"),
		FreeOnly: c.Query("free") == "true",
		Keyword:  c.Query("keyword"),
		Status:   &active,
		Sort:     c.DefaultQuery("sort", "latest"),
		Page:     page,
		Limit:    limit,
	}

	resources, total, err := services.FindResources(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve resources"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Resources retrieved successfully", ResourceListResponse{
		Resources: resources,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}

// GetResource godoc
// @Summary Get resource details
// @Description Get a single resource with caller-specific download state
// @Tags resource
// @Produce json
// @Security Bearer
// @Param id path int true "Resource ID"
// @Success 200 {object} utils.Response{data=resource.ResourceDetailResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /resources/{id} [get]
func GetResource(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid resource ID"))
		return
	}

	res, err := services.GetResourceByID(uint(id))
	if err != nil {
		if err == services.ErrResourceNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Resource not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve resource"))
		return
	}

	isOwner := res.OwnerID == me.ID

	// A hidden resource stays visible to its owner and to admins only
	if res.Status != models.ResourceStatusActive && !isOwner && me.Role != "admin" {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Resource not found"))
		return
	}

	downloaded, _ := services.HasDownloaded(me.ID, res.ID)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Resource retrieved successfully", ResourceDetailResponse{
		Resource:   *res,
		IsOwner:    isOwner,
		Downloaded: downloaded,
	}))
}

// CreateResource godoc
// @Summary Publish a resource
// @Description Register an already-uploaded file as a resource and collect the upload reward
// @Tags resource
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateResourceInput true "Resource metadata"
// @Success 201 {object} utils.Response{data=resource.CreateResourceResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /resources [post]
func CreateResource(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	var input CreateResourceInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	res, receipt, err := services.CreateResource(services.CreateResourceRequest{
		OwnerID:     me.ID,
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		Semester:    input.Semester,
		FilePath:    input.FilePath,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		CoinPrice:   input.CoinPrice,
		Tags:        input.Tags,
	})
	if err != nil {
		if err == services.ErrInvalidPrice {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create resource"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Resource published successfully", CreateResourceResponse{
		Resource: *res,
		Reward:   *receipt,
	}))
}

// UploadResource godoc
// @Summary Upload and publish a resource
// @Description Upload a file and register it as a resource in one request
// @Tags resource
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "File to upload"
// @Param title formData string true "Resource title"
// @Param description formData string false "Description"
// @Param subject formData string false "Subject"
// @Param semester formData string false "Semester"
// @Param coin_price formData int false "Price in coins" default(0)
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} utils.Response{data=resource.CreateResourceResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /resources/upload [post]
func UploadResource(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	var input UploadResourceInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid form data: "+err.Error()))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "File is required"))
		return
	}

	cfg, _ := config.LoadConfig()
	maxSize := int64(50)
	if cfg != nil {
		maxSize = int64(cfg.MaxUploadSizeMB)
	}
	if file.Size > maxSize*1024*1024 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest,
			fmt.Sprintf("File exceeds the %d MB limit", maxSize)))
		return
	}

	ext := filepath.Ext(file.Filename)
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("breez-upload-%d%s", time.Now().UnixNano(), ext))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to buffer uploaded file"))
		return
	}
	defer os.Remove(tmpPath)

	fileURL, err := services.NewSTSClientManager().UploadWithSTS(tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to store file: "+err.Error()))
		return
	}

	var tags []string
	if input.Tags != "" {
		for _, t := range strings.Split(input.Tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	res, receipt, err := services.CreateResource(services.CreateResourceRequest{
		OwnerID:     me.ID,
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		Semester:    input.Semester,
		FilePath:    fileURL,
		FileType:    strings.TrimPrefix(strings.ToLower(ext), "."),
		FileSize:    file.Size,
		CoinPrice:   input.CoinPrice,
		Tags:        tags,
	})
	if err != nil {
		if err == services.ErrInvalidPrice {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create resource"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Resource published successfully", CreateResourceResponse{
		Resource: *res,
		Reward:   *receipt,
	}))
}

// MyResources godoc
// @Summary List own uploads
// @Description Get the caller's uploaded resources with per-resource earnings
// @Tags resource
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=resource.MyResourcesResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /resources/mine [get]
func MyResources(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	resources, total, err := services.FindUserResources(me.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve resources"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Resources retrieved successfully", MyResourcesResponse{
		Resources: resources,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}

// DownloadResource godoc
// @Summary Download a resource
// @Description Pay the resource's coin price and get its file URL. Each resource is paid for at most once per user; repeat calls are rejected.
// @Tags resource
// @Produce json
// @Security Bearer
// @Param id path int true "Resource ID"
// @Success 200 {object} utils.Response{data=resource.DownloadResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 402 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /resources/{id}/download [post]
func DownloadResource(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid resource ID"))
		return
	}

	receipt, err := services.SettleDownload(me.ID, uint(id), me.Username)
	if err != nil {
		switch err {
		case services.ErrResourceNotFound, services.ErrResourceUnavailable:
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Resource not found"))
		case services.ErrOwnResource:
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case services.ErrAlreadyDownloaded:
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		case services.ErrInsufficientCoins:
			c.JSON(http.StatusPaymentRequired, utils.NewErrorResponse(http.StatusPaymentRequired, err.Error()))
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to settle download"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Download settled successfully", DownloadResponse{
		FileURL:      receipt.Resource.FilePath,
		CoinsSpent:   receipt.CoinsSpent,
		NewBalance:   receipt.NewBalance,
		Achievements: receipt.Achievements,
	}))
}

// ListDownloads godoc
// @Summary List own downloads
// @Description Get the caller's download history, newest first
// @Tags resource
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=resource.DownloadListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /downloads [get]
func ListDownloads(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	me := userVal.(models.User)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	downloads, total, err := services.FindUserDownloads(me.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to retrieve downloads"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Downloads retrieved successfully", DownloadListResponse{
		Downloads: downloads,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}
