package dao

import (
	"context"

	"Lumen/models"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		Repo: NewRepo[models.Comment](db),
	}
}

// ListByPost 动态下的评论，按时间正序
func (d *CommentDAO) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := d.Db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}
