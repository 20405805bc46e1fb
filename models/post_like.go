package models

import "time"

// PostLike 点赞关系，(post_id, user_id) 唯一，取消点赞只翻 status
type PostLike struct {
	Id        uint64 `gorm:"primaryKey"`
	PostId    int64  `gorm:"uniqueIndex:uk_post_user,priority:1"`
	UserId    uint64 `gorm:"uniqueIndex:uk_post_user,priority:2"`
	Status    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_like"
}
