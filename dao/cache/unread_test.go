package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newUnreadFixture(t *testing.T) *UnreadStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewUnreadStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestUnreadIncrAndReset(t *testing.T) {
	u := newUnreadFixture(t)
	ctx := context.Background()

	u.Incr(ctx, 1, 2)
	u.Incr(ctx, 1, 2)
	u.Incr(ctx, 1, 3)

	if got := u.Get(ctx, 1, 2); got != 2 {
		t.Errorf("unread(1,2) = %d, want 2", got)
	}
	if got := u.Get(ctx, 1, 3); got != 1 {
		t.Errorf("unread(1,3) = %d, want 1", got)
	}

	u.Reset(ctx, 1, 2)
	if got := u.Get(ctx, 1, 2); got != 0 {
		t.Errorf("after reset = %d, want 0", got)
	}
	// 只清指定对端
	if got := u.Get(ctx, 1, 3); got != 1 {
		t.Errorf("unrelated peer reset: %d, want 1", got)
	}
}

func TestUnreadBatchGet(t *testing.T) {
	u := newUnreadFixture(t)
	ctx := context.Background()

	u.Incr(ctx, 1, 2)
	u.Incr(ctx, 1, 4)
	u.Incr(ctx, 1, 4)

	got := u.BatchGet(ctx, 1, []uint64{2, 3, 4})
	if got[2] != 1 || got[4] != 2 {
		t.Errorf("batch = %v", got)
	}
	if _, ok := got[3]; ok {
		t.Errorf("peer without unread should be absent: %v", got)
	}

	if got := u.BatchGet(ctx, 1, nil); len(got) != 0 {
		t.Errorf("empty senders: %v", got)
	}
}
