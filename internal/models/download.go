package models

import "time"

// Download records that a user paid for a resource. The unique index on
// (user_id, resource_id) guarantees a user is only ever charged once per
// resource, no matter how many requests race.
type Download struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_resource;not null" json:"user_id"`
	ResourceID uint      `gorm:"uniqueIndex:idx_user_resource;not null" json:"resource_id"`
	CoinCost   int64     `gorm:"not null" json:"coin_cost"`
	Resource   Resource  `gorm:"foreignKey:ResourceID" json:"resource"`
}
