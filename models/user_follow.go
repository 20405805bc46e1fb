package models

import "time"

// UserFollow 关注关系，(follower_id, followee_id) 唯一，取关只翻 status 不删行
type UserFollow struct {
	Id         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"uniqueIndex:uk_follow,priority:1"`
	FolloweeID uint64 `gorm:"uniqueIndex:uk_follow,priority:2"`
	Status     int    // 1 关注中 0 已取关
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserFollow) TableName() string {
	return "user_follow"
}
