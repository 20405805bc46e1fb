package dao

import (
	"context"

	"Lumen/models"

	"gorm.io/gorm"
)

type MessageDAO struct {
	Repo[models.DirectMessage]
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		Repo: NewRepo[models.DirectMessage](db),
	}
}

// Save 保存消息
func (d *MessageDAO) Save(ctx context.Context, msg *models.DirectMessage) error {
	return d.Db.WithContext(ctx).Create(msg).Error
}

// ListForUser 当前用户相关的全部消息，按时间倒序（会话列表聚合用）
func (d *MessageDAO) ListForUser(ctx context.Context, userID uint64) ([]models.DirectMessage, error) {
	var msgs []models.DirectMessage
	err := d.Db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	return msgs, err
}

// ListBetween 两个用户间的完整历史，按时间正序（打开聊天用）
func (d *MessageDAO) ListBetween(ctx context.Context, userID, peerID uint64) ([]models.DirectMessage, error) {
	var msgs []models.DirectMessage
	err := d.Db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead 把 peer 发给 user 的未读消息全部置为已读
func (d *MessageDAO) MarkRead(ctx context.Context, userID, peerID uint64) error {
	return d.Db.WithContext(ctx).
		Model(&models.DirectMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", peerID, userID, false).
		Update("is_read", true).Error
}

func (d *MessageDAO) GetByID(ctx context.Context, msgID int64) (*models.DirectMessage, error) {
	return d.Repo.FindByWhere(ctx, "id = ?", msgID)
}
