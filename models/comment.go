package models

import "time"

type Comment struct {
	Id        int64  `gorm:"primaryKey"` // Snowflake
	PostId    int64  `gorm:"index"`
	UserId    uint64 `gorm:"index"`
	Content   string
	CreatedAt time.Time
}

func (Comment) TableName() string {
	return "post_comment"
}
