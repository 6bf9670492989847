package models

import "time"

// SyncWatermark tracks the newest remote updated-at seen per entity and
// scope (a professional ID, an expert slug, or "ALL").
type SyncWatermark struct {
	ID int64 `gorm:"primaryKey;column:id;autoIncrement"`

	Entity string `gorm:"column:entity;uniqueIndex:idx_watermark_key"`
	Scope  string `gorm:"column:scope;uniqueIndex:idx_watermark_key"`

	LastUpdated time.Time `gorm:"column:last_updated"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SyncWatermark) TableName() string { return "sync_watermarks" }
