package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"Lumen/config"
	"Lumen/dao"
	"Lumen/dao/cache"
	"Lumen/models"
	"Lumen/pkg/jsonutil"
	"Lumen/pkg/log"
	"Lumen/pkg/response"
	"Lumen/pkg/snowflake"
	"Lumen/types"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ IMessageService = (*MessageService)(nil)

type IMessageService interface {
	LoadConversations(ctx context.Context, userID uint64) ([]*types.ConversationDTO, error)
	OpenChat(ctx context.Context, userID, peerID uint64) (*types.ChatHistoryDTO, error)
	SendMessage(ctx context.Context, userID, peerID uint64, content string) (*types.MessageDTO, error)
	SearchUsers(ctx context.Context, query string) ([]types.UserBrief, error)
}

type MessageService struct {
	MessageDAO    *dao.MessageDAO
	UserDAO       *dao.Users
	UnreadStorage *cache.UnreadStorage
	Redis         *redis.Client
	Oss           IOssService
	Product       *config.ProductConfig
}

// ConversationSummary 会话聚合的中间结果，纯内存推导，不落库
type ConversationSummary struct {
	PeerId uint64
	Last   models.DirectMessage
	Unread int
}

// ConversationsOf 纯函数：从当前用户相关的消息（按时间倒序）折叠出会话摘要。
// 每个对端恰好一条，顺序即最近消息的顺序；unread 只数发给 me 且未读的。
func ConversationsOf(msgs []models.DirectMessage, me uint64) []ConversationSummary {
	order := make([]uint64, 0)
	byPeer := make(map[uint64]*ConversationSummary)

	for _, m := range msgs {
		peer := m.SenderId
		if m.SenderId == me {
			peer = m.ReceiverId
		}

		summary, ok := byPeer[peer]
		if !ok {
			// 输入是倒序的，第一次遇到的就是该对端的最新一条
			summary = &ConversationSummary{PeerId: peer, Last: m}
			byPeer[peer] = summary
			order = append(order, peer)
		}
		if m.ReceiverId == me && !m.IsRead {
			summary.Unread++
		}
	}

	result := make([]ConversationSummary, 0, len(order))
	for _, peer := range order {
		result = append(result, *byPeer[peer])
	}
	return result
}

func (s *MessageService) LoadConversations(ctx context.Context, userID uint64) ([]*types.ConversationDTO, error) {
	msgs, err := s.MessageDAO.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := ConversationsOf(msgs, userID)

	peerIDs := make([]uint64, 0, len(summaries))
	for _, sum := range summaries {
		peerIDs = append(peerIDs, sum.PeerId)
	}

	users, err := s.UserDAO.FindByIds(ctx, peerIDs)
	if err != nil {
		return nil, err
	}

	// 缓存里的未读数可能比 DB 聚合更新（推送路径只写缓存），取较大者
	cached := s.UnreadStorage.BatchGet(ctx, userID, peerIDs)

	result := make([]*types.ConversationDTO, 0, len(summaries))
	for _, sum := range summaries {
		dto := &types.ConversationDTO{
			Peer:        userBrief(s.Oss, users[sum.PeerId]),
			LastMsg:     sum.Last.Content,
			LastMsgTime: sum.Last.CreatedAt,
			Unread:      sum.Unread,
		}
		if c, ok := cached[sum.PeerId]; ok && c > dto.Unread {
			dto.Unread = c
		}
		result = append(result, dto)
	}
	return result, nil
}

func (s *MessageService) OpenChat(ctx context.Context, userID, peerID uint64) (*types.ChatHistoryDTO, error) {
	peer, err := s.UserDAO.FindById(ctx, peerID)
	if err != nil {
		return nil, err
	}
	if peer == nil {
		return nil, response.NewError(http.StatusNotFound, "用户不存在")
	}

	msgs, err := s.MessageDAO.ListBetween(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}

	// 打开即已读：对方发来的未读全部清掉
	if err := s.MessageDAO.MarkRead(ctx, userID, peerID); err != nil {
		return nil, err
	}
	s.UnreadStorage.Reset(ctx, userID, peerID)

	dto := &types.ChatHistoryDTO{
		Peer:     userBrief(s.Oss, peer),
		Messages: make([]types.MessageDTO, 0, len(msgs)),
	}
	for i := range msgs {
		dto.Messages = append(dto.Messages, messageDTO(&msgs[i]))
	}
	return dto, nil
}

func (s *MessageService) SendMessage(ctx context.Context, userID, peerID uint64, content string) (*types.MessageDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.NewError(http.StatusBadRequest, "消息不能为空")
	}
	if peerID == 0 {
		return nil, response.NewError(http.StatusBadRequest, "未选择会话")
	}
	if peerID == userID {
		return nil, response.NewError(http.StatusBadRequest, "不能给自己发私信")
	}

	exist, err := s.UserDAO.IsExist(ctx, "id = ?", peerID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NewError(http.StatusNotFound, "用户不存在")
	}

	msg := &models.DirectMessage{
		Id:         snowflake.GenID(),
		SenderId:   userID,
		ReceiverId: peerID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now().UnixMilli(),
		UpdatedAt:  time.Now(),
	}
	if err := s.MessageDAO.Save(ctx, msg); err != nil {
		return nil, err
	}

	// 接收方未读数 +1（缓存路径，DB 聚合兜底）
	s.UnreadStorage.Incr(ctx, peerID, userID)

	// 发出 fanout 事件。发送方本地不回显，消息对发送方可见
	// 也走这条推送路径，保证唯一信息源是存储层。
	dto := messageDTO(msg)
	event := types.MessageEvent{Message: dto}
	if err := s.Redis.Publish(ctx, types.MessageFanoutChannel, jsonutil.Encode(event)).Err(); err != nil {
		// 推送失败不回滚消息，下次手动刷新能看到
		log.L.Warn("publish message event failed", zap.Error(err), zap.Int64("msg_id", msg.Id))
	}

	return &dto, nil
}

func (s *MessageService) SearchUsers(ctx context.Context, query string) ([]types.UserBrief, error) {
	query = strings.TrimSpace(query)
	// 少于 2 个字符不查询
	if len([]rune(query)) < 2 {
		return []types.UserBrief{}, nil
	}

	users, err := s.UserDAO.SearchByUsername(ctx, query, s.Product.SearchLimit)
	if err != nil {
		return nil, err
	}

	result := make([]types.UserBrief, 0, len(users))
	for i := range users {
		result = append(result, userBrief(s.Oss, &users[i]))
	}
	return result, nil
}
