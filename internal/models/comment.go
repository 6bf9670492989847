package models

import "time"

// Comment caches a normalized review/comment. Author fields are flattened
// from the canonical CommentData shape; the raw heterogeneous backend
// payload is normalized once at ingestion and never stored.
type Comment struct {
	ID int64 `gorm:"primaryKey;column:id"`

	PostID     int64  `gorm:"column:post_id"`
	ExpertSlug string `gorm:"column:expert_slug"`

	AuthorName   string `gorm:"column:author_name"`
	AuthorSlug   string `gorm:"column:author_slug"`
	AuthorAvatar string `gorm:"column:author_avatar"`
	AuthorRank   int    `gorm:"column:author_rank"`
	AuthorRole   string `gorm:"column:author_role"`
	IsExpert     bool   `gorm:"column:is_expert"`
	IsVerified   bool   `gorm:"column:is_verified"`
	AuthorScore  int    `gorm:"column:author_score"`

	Content string `gorm:"column:content"`
	Date    string `gorm:"column:date"`
	Rating  int    `gorm:"column:rating"`

	// 0 means top-level; replies nest one level deep only.
	Parent int64 `gorm:"column:parent"`

	LikesCount   int    `gorm:"column:likes_count"`
	IsAnonymous  bool   `gorm:"column:is_anonymous"`
	GoalTag      string `gorm:"column:goal_tag"`
	ProgramType  string `gorm:"column:program_type"`
	ProcessWeeks int    `gorm:"column:process_weeks"`
	SuccessStory string `gorm:"column:success_story"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Comment) TableName() string { return "comments" }
