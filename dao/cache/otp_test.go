package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newOtpFixture(t *testing.T) (*OtpStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewOtpStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestOtpVerify(t *testing.T) {
	o, _ := newOtpFixture(t)
	ctx := context.Background()

	if err := o.Set(ctx, "req-1", "123456"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := o.Verify(ctx, "req-1", "000000"); !errors.Is(err, ErrOtpNotFound) {
		t.Errorf("wrong code: got %v, want ErrOtpNotFound", err)
	}

	if err := o.Verify(ctx, "req-1", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// 一次性：同一个码第二次校验必须失败
	if err := o.Verify(ctx, "req-1", "123456"); !errors.Is(err, ErrOtpNotFound) {
		t.Errorf("reuse: got %v, want ErrOtpNotFound", err)
	}
}

func TestOtpAttemptCap(t *testing.T) {
	o, _ := newOtpFixture(t)
	ctx := context.Background()

	if err := o.Set(ctx, "req-1", "123456"); err != nil {
		t.Fatalf("set: %v", err)
	}

	for i := 0; i < otpMaxAttempts; i++ {
		if err := o.Verify(ctx, "req-1", "000000"); !errors.Is(err, ErrOtpNotFound) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	// 超过次数后连正确的码也不再接受
	if err := o.Verify(ctx, "req-1", "123456"); !errors.Is(err, ErrOtpTooManyTrys) {
		t.Errorf("after cap: got %v, want ErrOtpTooManyTrys", err)
	}
}

func TestOtpExpires(t *testing.T) {
	o, mr := newOtpFixture(t)
	ctx := context.Background()

	if err := o.Set(ctx, "req-1", "123456"); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(otpExpireAt + time.Second)

	if err := o.Verify(ctx, "req-1", "123456"); !errors.Is(err, ErrOtpNotFound) {
		t.Errorf("expired: got %v, want ErrOtpNotFound", err)
	}
}
