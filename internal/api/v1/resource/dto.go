package resource

import (
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"
)

// CreateResourceInput registers an already-uploaded blob as a resource.
type CreateResourceInput struct {
	Title       string   `json:"title" binding:"required,min=3,max=150"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Subject     string   `json:"subject" binding:"omitempty,max=100"`
	Semester    string   `json:"semester" binding:"omitempty,max=50"`
	FilePath    string   `json:"file_path" binding:"required,url"`
	FileType    string   `json:"file_type" binding:"omitempty,max=50"`
	FileSize    int64    `json:"file_size" binding:"omitempty,gte=0"`
	CoinPrice   int64    `json:"coin_price" binding:"gte=0"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=2,max=30"`
}

// UploadResourceInput carries the metadata fields of a multipart upload.
// The file itself arrives as the "file" form part.
type UploadResourceInput struct {
	Title       string `form:"title" binding:"required,min=3,max=150"`
	Description string `form:"description" binding:"omitempty,max=2000"`
	Subject     string `form:"subject" binding:"omitempty,max=100"`
	Semester    string `form:"semester" binding:"omitempty,max=50"`
	CoinPrice   int64  `form:"coin_price" binding:"gte=0"`
	Tags        string `form:"tags" binding:"omitempty"` // comma separated
}

type CreateResourceResponse struct {
	Resource models.Resource        `json:"resource"`
	Reward   services.UploadReceipt `json:"reward"`
}

// ResourceDetailResponse adds caller-specific context to a resource
type ResourceDetailResponse struct {
	Resource   models.Resource `json:"resource"`
	IsOwner    bool            `json:"is_owner"`
	Downloaded bool            `json:"downloaded"`
}

type ResourceListResponse struct {
	Resources []models.Resource `json:"resources"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

type MyResourcesResponse struct {
	Resources []services.ResourceEarnings `json:"resources"`
	Total     int64                       `json:"total"`
	Page      int                         `json:"page"`
	Limit     int                         `json:"limit"`
}

// DownloadResponse is returned after a successful settlement.
type DownloadResponse struct {
	FileURL      string               `json:"file_url"`
	CoinsSpent   int64                `json:"coins_spent"`
	NewBalance   int64                `json:"new_balance"`
	Achievements []models.Achievement `json:"achievements"`
}

type DownloadListResponse struct {
	Downloads []models.Download `json:"downloads"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}
