package dao

import (
	"context"
	"time"

	"Lumen/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoryViewDAO struct {
	Repo[models.StoryView]
}

func NewStoryViewDAO(db *gorm.DB) *StoryViewDAO {
	return &StoryViewDAO{
		Repo: NewRepo[models.StoryView](db),
	}
}

// Record 记录观看，幂等：已存在返回 created=false，不会产生第二条记录
func (d *StoryViewDAO) Record(ctx context.Context, storyID int64, viewerID uint64) (created bool, err error) {
	view := models.StoryView{
		StoryId:   storyID,
		ViewerId:  viewerID,
		CreatedAt: time.Now(),
	}
	res := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&view)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ViewedSet 某观众已看过的快拍 id 集合
func (d *StoryViewDAO) ViewedSet(ctx context.Context, viewerID uint64, storyIDs []int64) (map[int64]struct{}, error) {
	result := make(map[int64]struct{}, len(storyIDs))
	if len(storyIDs) == 0 {
		return result, nil
	}

	var ids []int64
	err := d.Db.WithContext(ctx).
		Model(&models.StoryView{}).
		Where("viewer_id = ? AND story_id IN ?", viewerID, storyIDs).
		Pluck("story_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}
