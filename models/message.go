package models

import "time"

// DirectMessage 私信，内容一旦写入不再修改，只有 is_read 会被翻转
type DirectMessage struct {
	Id         int64  `gorm:"primaryKey"` // Snowflake
	SenderId   uint64 `gorm:"index"`
	ReceiverId uint64 `gorm:"index"`
	Content    string
	IsRead     bool
	CreatedAt  int64 // 毫秒时间戳
	UpdatedAt  time.Time
}

func (DirectMessage) TableName() string {
	return "dm_message"
}
