package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResourceStatus string

const (
	ResourceStatusActive ResourceStatus = "active"
	ResourceStatusHidden ResourceStatus = "hidden"
)

// Resource is a study material shared by a user. Rows are created once;
// only counters and status change afterwards.
type Resource struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	OwnerID       uint           `gorm:"index;not null" json:"owner_id"`
	Title         string         `gorm:"index;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Subject       string         `gorm:"index;type:varchar(100)" json:"subject"`
	Semester      string         `gorm:"type:varchar(50)" json:"semester"`
	FilePath      string         `gorm:"not null" json:"file_path"`
	FileType      string         `gorm:"type:varchar(50)" json:"file_type"`
	FileSize      int64          `gorm:"not null;default:0" json:"file_size"`
	CoinPrice     int64          `gorm:"not null;default:0" json:"coin_price"`
	DownloadCount int64          `gorm:"not null;default:0" json:"download_count"`
	Status        ResourceStatus `gorm:"index;not null;default:'active'" json:"status"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags" swaggertype:"array,string"`
}

// TableName overrides the table name
func (Resource) TableName() string {
	return "resources"
}
