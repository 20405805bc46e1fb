package models

import "time"

// Story 快拍，不做定时清理，过期靠查询条件自然过滤
type Story struct {
	Id         int64  `gorm:"primaryKey"` // Snowflake
	UserId     uint64 `gorm:"index"`
	ObjectKey  string // 私有桶 objectKey，访问走签名 URL
	Caption    string
	CreatedAt  int64 // 毫秒时间戳
	ExpiresAt  int64 `gorm:"index"` // created_at + TTL，毫秒
	ViewsCount uint32
	UpdatedAt  time.Time
}

func (Story) TableName() string {
	return "story"
}
