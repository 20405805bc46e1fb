package dao

import (
	"context"
	"time"

	"Lumen/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStatsDAO struct {
	Repo[models.UserStats]
}

func NewUserStatsDAO(db *gorm.DB) *UserStatsDAO {
	return &UserStatsDAO{
		Repo: NewRepo[models.UserStats](db),
	}
}

func (d *UserStatsDAO) GetByUserID(ctx context.Context, userID uint64) (*models.UserStats, error) {
	return d.Repo.FindByWhere(ctx, "user_id = ?", userID)
}

// IncrFollowerCount 粉丝数增减，行不存在则先建行
func (d *UserStatsDAO) IncrFollowerCount(ctx context.Context, userID uint64, delta int) error {
	return d.incr(ctx, userID, "follower_count", delta)
}

// IncrFollowingCount 关注数增减
func (d *UserStatsDAO) IncrFollowingCount(ctx context.Context, userID uint64, delta int) error {
	return d.incr(ctx, userID, "following_count", delta)
}

func (d *UserStatsDAO) incr(ctx context.Context, userID uint64, column string, delta int) error {
	if err := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserStats{UserId: userID, UpdatedAt: time.Now()}).Error; err != nil {
		return err
	}

	// 原子增减；上层保证先查状态再增减，不会减成负数
	return d.Db.WithContext(ctx).
		Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", delta),
			"updated_at": time.Now(),
		}).Error
}
