package models

import "time"

const (
	PostStatusPending  = 0
	PostStatusApproved = 1
	PostStatusRejected = 2
)

// Post 图片动态，发布后进管理员审核队列，过审才进公开 feed
type Post struct {
	Id        int64  `gorm:"primaryKey"` // Snowflake
	UserId    uint64 `gorm:"index"`
	ObjectKey string // 公开桶 objectKey
	Caption   string
	Status    int `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Post) TableName() string {
	return "post"
}
