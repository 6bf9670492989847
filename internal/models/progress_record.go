package models

import "time"

const (
	ContentDiet     = "diet"
	ContentExercise = "exercise"
	ContentBlog     = "blog"
)

// ProgressRecord caches per-user, per-content completion tracking.
// CompletedItems is stored losslessly as a JSON array string.
// RewardClaimed is monotonic: once true it never goes back to false.
type ProgressRecord struct {
	ID int64 `gorm:"primaryKey;column:id;autoIncrement"`

	UserID      int64  `gorm:"column:user_id;uniqueIndex:idx_progress_key"`
	ContentType string `gorm:"column:content_type;uniqueIndex:idx_progress_key"`
	ContentID   int64  `gorm:"column:content_id;uniqueIndex:idx_progress_key"`

	CompletedItems string `gorm:"column:completed_items"`

	IsStarted     bool `gorm:"column:is_started"`
	IsCompleted   bool `gorm:"column:is_completed"`
	RewardClaimed bool `gorm:"column:reward_claimed"`

	UpdatedAtRemote *time.Time `gorm:"column:updated_at_remote"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_records" }
