package dao

import (
	"context"
	"fmt"
	"strings"

	"Lumen/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

// FindByUsername 用户名查询
func (u *Users) FindByUsername(ctx context.Context, username string) (*models.Users, error) {
	return u.Repo.FindByWhere(ctx, "username = ?", username)
}

func (u *Users) FindById(ctx context.Context, id uint64) (*models.Users, error) {
	return u.Repo.FindByWhere(ctx, "id = ?", id)
}

// FindByIds 批量查询，story 分组、会话列表补 profile 用
func (u *Users) FindByIds(ctx context.Context, ids []uint64) (map[uint64]*models.Users, error) {
	result := make(map[uint64]*models.Users, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []models.Users
	err := u.Db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].Id] = &users[i]
	}
	return result, nil
}

// SearchByUsername 用户名大小写不敏感模糊搜索
func (u *Users) SearchByUsername(ctx context.Context, query string, limit int) ([]models.Users, error) {
	var users []models.Users
	pattern := "%" + strings.ToLower(query) + "%"
	err := u.Db.WithContext(ctx).
		Where("LOWER(username) LIKE ?", pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (u *Users) UpdateById(ctx context.Context, id uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	err := u.Db.WithContext(ctx).
		Model(&models.Users{}).
		Where("id = ?", id).
		Updates(data).Error
	if err != nil {
		return fmt.Errorf("dao.Users.UpdateById error: %w", err)
	}
	return nil
}
