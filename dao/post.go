package dao

import (
	"context"
	"time"

	"Lumen/models"

	"gorm.io/gorm"
)

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{
		Repo: NewRepo[models.Post](db),
	}
}

// ListByStatus 按状态列出动态，公开 feed 传 approved，审核队列传 pending
func (d *PostDAO) ListByStatus(ctx context.Context, status int, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := d.Db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (d *PostDAO) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (d *PostDAO) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	return d.Repo.FindByWhere(ctx, "id = ?", postID)
}

// UpdateStatus 审核通过/驳回
func (d *PostDAO) UpdateStatus(ctx context.Context, postID int64, status int) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
