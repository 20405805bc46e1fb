package models

import "time"

type PostStats struct {
	PostId       int64 `gorm:"primaryKey"`
	LikeCount    uint32
	CommentCount uint32
	UpdatedAt    time.Time
}

func (PostStats) TableName() string {
	return "post_stats"
}
