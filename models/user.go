package models

import "time"

type Users struct {
	Id        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:64"`
	Nickname  string
	Password  string // bcrypt hash
	AvatarKey string // 公开桶 objectKey，空表示没上传过头像
	Bio       string
	Verified  bool
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Users) TableName() string {
	return "users"
}
