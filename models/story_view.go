package models

import "time"

// StoryView 一个观众对一条快拍的观看记录，(story_id, viewer_id) 唯一
type StoryView struct {
	Id        uint64 `gorm:"primaryKey"`
	StoryId   int64  `gorm:"uniqueIndex:uk_story_viewer,priority:1"`
	ViewerId  uint64 `gorm:"uniqueIndex:uk_story_viewer,priority:2"`
	CreatedAt time.Time
}

func (StoryView) TableName() string {
	return "story_view"
}
