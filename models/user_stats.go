package models

import "time"

type UserStats struct {
	UserId         uint64 `gorm:"primaryKey"`
	FollowerCount  uint32
	FollowingCount uint32
	UpdatedAt      time.Time
}

func (UserStats) TableName() string {
	return "user_stats"
}
