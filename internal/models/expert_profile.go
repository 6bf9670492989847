package models

import "time"

// ExpertProfile caches a professional's public listing. Unclaimed profiles
// are placeholder listings: only Slug, Name and the tag fields are reliably
// populated, and IsClaimed gates which render path a consumer takes.
// Tag fields are normalized to JSON array strings at ingestion (the backend
// may return either a JSON-encoded string or an already-parsed array).
type ExpertProfile struct {
	ID int64 `gorm:"primaryKey;column:id"`

	Slug string `gorm:"column:slug;uniqueIndex"`
	Name string `gorm:"column:name"`

	IsClaimed bool `gorm:"column:is_claimed"`

	Title     string `gorm:"column:title"`
	City      string `gorm:"column:city"`
	About     string `gorm:"column:about"`
	AvatarURL string `gorm:"column:avatar_url"`

	Rating      float64 `gorm:"column:rating"`
	ReviewCount int     `gorm:"column:review_count"`

	ExpertiseTags string `gorm:"column:expertise_tags"`
	GoalTags      string `gorm:"column:goal_tags"`
	AgeGroups     string `gorm:"column:age_groups"`

	UpdatedAtRemote *time.Time `gorm:"column:updated_at_remote"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ExpertProfile) TableName() string { return "expert_profiles" }
