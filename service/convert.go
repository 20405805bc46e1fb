package service

import (
	"Lumen/models"
	"Lumen/types"
)

func userBrief(oss IOssService, u *models.Users) types.UserBrief {
	if u == nil {
		return types.UserBrief{}
	}
	return types.UserBrief{
		Id:       u.Id,
		Username: u.Username,
		Nickname: u.Nickname,
		Avatar:   oss.PublicURL(u.AvatarKey),
		Verified: u.Verified,
	}
}

func messageDTO(m *models.DirectMessage) types.MessageDTO {
	return types.MessageDTO{
		Id:         m.Id,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
