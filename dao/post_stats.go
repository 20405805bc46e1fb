package dao

import (
	"context"
	"time"

	"Lumen/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostStatsDAO struct {
	Repo[models.PostStats]
}

func NewPostStatsDAO(db *gorm.DB) *PostStatsDAO {
	return &PostStatsDAO{
		Repo: NewRepo[models.PostStats](db),
	}
}

func (d *PostStatsDAO) GetByPostID(ctx context.Context, postID int64) (*models.PostStats, error) {
	return d.Repo.FindByWhere(ctx, "post_id = ?", postID)
}

func (d *PostStatsDAO) IncrLikeCount(ctx context.Context, postID int64, delta int) error {
	return d.incr(ctx, postID, "like_count", delta)
}

func (d *PostStatsDAO) IncrCommentCount(ctx context.Context, postID int64, delta int) error {
	return d.incr(ctx, postID, "comment_count", delta)
}

func (d *PostStatsDAO) incr(ctx context.Context, postID int64, column string, delta int) error {
	if err := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostStats{PostId: postID, UpdatedAt: time.Now()}).Error; err != nil {
		return err
	}

	return d.Db.WithContext(ctx).
		Model(&models.PostStats{}).
		Where("post_id = ?", postID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", delta),
			"updated_at": time.Now(),
		}).Error
}
