package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// 验证码有效期
	otpExpireAt = 5 * time.Minute
	// 同一个 request_id 最多允许试错次数
	otpMaxAttempts = 5
)

var (
	ErrOtpNotFound    = errors.New("验证码不存在或已过期")
	ErrOtpTooManyTrys = errors.New("尝试次数过多")
)

type OtpStorage struct {
	redis *redis.Client
}

func NewOtpStorage(rds *redis.Client) *OtpStorage {
	return &OtpStorage{rds}
}

func (o *OtpStorage) Set(ctx context.Context, requestID, code string) error {
	return o.redis.Set(ctx, o.codeKey(requestID), code, otpExpireAt).Err()
}

// Verify 校验验证码。校验成功立即删除（一次性），失败累计尝试次数。
func (o *OtpStorage) Verify(ctx context.Context, requestID, code string) error {
	tries, err := o.redis.Incr(ctx, o.tryKey(requestID)).Result()
	if err != nil {
		return err
	}
	o.redis.Expire(ctx, o.tryKey(requestID), otpExpireAt)
	if tries > otpMaxAttempts {
		return ErrOtpTooManyTrys
	}

	stored, err := o.redis.Get(ctx, o.codeKey(requestID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrOtpNotFound
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrOtpNotFound
	}

	// 一次性：用过即废
	o.redis.Del(ctx, o.codeKey(requestID), o.tryKey(requestID))
	return nil
}

func (o *OtpStorage) codeKey(requestID string) string {
	return fmt.Sprintf("otp:code:%s", requestID)
}

func (o *OtpStorage) tryKey(requestID string) string {
	return fmt.Sprintf("otp:try:%s", requestID)
}
