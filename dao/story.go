package dao

import (
	"context"

	"Lumen/models"

	"gorm.io/gorm"
)

type StoryDAO struct {
	Repo[models.Story]
}

func NewStoryDAO(db *gorm.DB) *StoryDAO {
	return &StoryDAO{
		Repo: NewRepo[models.Story](db),
	}
}

// ListActive 未过期的快拍，按创建时间倒序
func (d *StoryDAO) ListActive(ctx context.Context, nowMs int64) ([]models.Story, error) {
	var stories []models.Story
	err := d.Db.WithContext(ctx).
		Where("expires_at > ?", nowMs).
		Order("created_at DESC, id DESC").
		Find(&stories).Error
	return stories, err
}

func (d *StoryDAO) GetByID(ctx context.Context, storyID int64) (*models.Story, error) {
	return d.Repo.FindByWhere(ctx, "id = ?", storyID)
}

// IncrViews 浏览计数原子 +1
func (d *StoryDAO) IncrViews(ctx context.Context, storyID int64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", storyID).
		Update("views_count", gorm.Expr("views_count + 1")).Error
}
