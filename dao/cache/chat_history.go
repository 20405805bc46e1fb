package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Lumen/pkg/jsonutil"

	"github.com/redis/go-redis/v9"
)

// 机器人会话上下文过期时间
const chatHistoryExpireAt = time.Hour

type ChatTurn struct {
	Role    string `json:"role"` // user / assistant
	Content string `json:"content"`
}

// ChatHistoryStorage 聊天机器人滚动上下文，按 sessionID 存最近 N 轮
type ChatHistoryStorage struct {
	redis *redis.Client
}

func NewChatHistoryStorage(rds *redis.Client) *ChatHistoryStorage {
	return &ChatHistoryStorage{rds}
}

func (c *ChatHistoryStorage) Append(ctx context.Context, sessionID string, maxTurns int, turns ...ChatTurn) error {
	key := c.name(sessionID)

	pipe := c.redis.Pipeline()
	for _, turn := range turns {
		pipe.RPush(ctx, key, jsonutil.Encode(turn))
	}
	// 一轮 = 一问一答两条
	pipe.LTrim(ctx, key, int64(-maxTurns*2), -1)
	pipe.Expire(ctx, key, chatHistoryExpireAt)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *ChatHistoryStorage) List(ctx context.Context, sessionID string) ([]ChatTurn, error) {
	items, err := c.redis.LRange(ctx, c.name(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]ChatTurn, 0, len(items))
	for _, item := range items {
		var turn ChatTurn
		if json.Unmarshal([]byte(item), &turn) == nil {
			turns = append(turns, turn)
		}
	}
	return turns, nil
}

func (c *ChatHistoryStorage) name(sessionID string) string {
	return fmt.Sprintf("bot:history:%s", sessionID)
}
