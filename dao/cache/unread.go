package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 未读消息过期时间 - 14天
const unreadExpireAt = 14 * 24 * time.Hour

type UnreadStorage struct {
	redis *redis.Client
}

func NewUnreadStorage(rds *redis.Client) *UnreadStorage {
	return &UnreadStorage{rds}
}

// Incr 消息未读数自增
// @params uid     用户ID
// @params sender  发送者ID
func (u *UnreadStorage) Incr(ctx context.Context, uid, sender uint64) {
	pipe := u.redis.Pipeline()
	u.PipeIncr(ctx, pipe, uid, sender)
	_, _ = pipe.Exec(ctx)
}

func (u *UnreadStorage) PipeIncr(ctx context.Context, pipe redis.Pipeliner, uid, sender uint64) {
	name := u.name(uid, sender)
	pipe.Incr(ctx, name)
	pipe.Expire(ctx, name, unreadExpireAt)
}

// Get 获取消息未读数
func (u *UnreadStorage) Get(ctx context.Context, uid, sender uint64) int {
	i, err := u.redis.Get(ctx, u.name(uid, sender)).Int()
	if err != nil {
		return 0
	}

	return i
}

// Reset 消息未读数清零（打开聊天时调用）
func (u *UnreadStorage) Reset(ctx context.Context, uid, sender uint64) {
	u.redis.Del(ctx, u.name(uid, sender))
}

// BatchGet 会话列表一次取齐全部 peer 的未读数
func (u *UnreadStorage) BatchGet(ctx context.Context, uid uint64, senders []uint64) map[uint64]int {
	resMap := make(map[uint64]int, len(senders))
	if len(senders) == 0 {
		return resMap
	}

	pipe := u.redis.Pipeline()
	for _, sender := range senders {
		pipe.Get(ctx, u.name(uid, sender))
	}

	cmds, _ := pipe.Exec(ctx)
	for i, cmd := range cmds {
		val, err := cmd.(*redis.StringCmd).Int()
		if err == nil {
			resMap[senders[i]] = val
		}
	}
	return resMap
}

// dm:unread:uid:sender
func (u *UnreadStorage) name(uid, sender uint64) string {
	return fmt.Sprintf("dm:unread:%d:%d", uid, sender)
}
