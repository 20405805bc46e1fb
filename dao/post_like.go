package dao

import (
	"context"
	"time"

	"Lumen/models"

	"gorm.io/gorm"
)

type PostLikeDAO struct {
	Repo[models.PostLike]
}

func NewPostLikeDAO(db *gorm.DB) *PostLikeDAO {
	return &PostLikeDAO{
		Repo: NewRepo[models.PostLike](db),
	}
}

// IsLiked 检查是否已点赞
func (d *PostLikeDAO) IsLiked(ctx context.Context, postID int64, userID uint64) (bool, error) {
	var like models.PostLike
	err := d.Db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND status = 1", postID, userID).
		First(&like).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus 设置点赞状态（如不存在则创建）
func (d *PostLikeDAO) SetStatus(ctx context.Context, postID int64, userID uint64, status int) error {
	now := time.Now()

	res := d.Db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	like := models.PostLike{
		PostId:    postID,
		UserId:    userID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return d.Db.WithContext(ctx).Create(&like).Error
}
