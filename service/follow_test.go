package service

import (
	"context"
	"testing"

	"Lumen/dao"
	"Lumen/models"
)

func newFollowService(t *testing.T) *FollowService {
	t.Helper()
	db := setupTestDB(t)
	return &FollowService{
		FollowDAO: dao.NewUserFollowDAO(db),
		StatsDAO:  dao.NewUserStatsDAO(db),
		UserDAO:   dao.NewUsers(db),
		Oss:       fakeOss{},
	}
}

func TestFollowIdempotent(t *testing.T) {
	s := newFollowService(t)
	ctx := context.Background()

	seedUser(t, s.UserDAO.Db, 1, "alice")
	seedUser(t, s.UserDAO.Db, 2, "bob")

	// 重复关注不会把计数刷上去
	for i := 0; i < 3; i++ {
		if err := s.Follow(ctx, 1, 2); err != nil {
			t.Fatalf("follow #%d: %v", i, err)
		}
	}

	followers, err := s.GetFollowerCount(ctx, 2)
	if err != nil {
		t.Fatalf("GetFollowerCount: %v", err)
	}
	if followers != 1 {
		t.Errorf("bob followers = %d, want 1", followers)
	}

	following, err := s.GetFollowingCount(ctx, 1)
	if err != nil {
		t.Fatalf("GetFollowingCount: %v", err)
	}
	if following != 1 {
		t.Errorf("alice following = %d, want 1", following)
	}

	ok, err := s.IsFollowing(ctx, 1, 2)
	if err != nil || !ok {
		t.Errorf("IsFollowing = %v, %v", ok, err)
	}
}

func TestUnfollowIdempotent(t *testing.T) {
	s := newFollowService(t)
	ctx := context.Background()

	seedUser(t, s.UserDAO.Db, 1, "alice")
	seedUser(t, s.UserDAO.Db, 2, "bob")

	if err := s.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}

	// 重复取关不会把计数减成负数
	for i := 0; i < 3; i++ {
		if err := s.Unfollow(ctx, 1, 2); err != nil {
			t.Fatalf("unfollow #%d: %v", i, err)
		}
	}

	followers, _ := s.GetFollowerCount(ctx, 2)
	if followers != 0 {
		t.Errorf("bob followers = %d, want 0", followers)
	}

	ok, _ := s.IsFollowing(ctx, 1, 2)
	if ok {
		t.Error("still following after unfollow")
	}
}

// 关注列表返回用户摘要，头像 key 拼成公开 URL
func TestGetFollowingList(t *testing.T) {
	s := newFollowService(t)
	ctx := context.Background()

	seedUser(t, s.UserDAO.Db, 1, "alice")
	seedUser(t, s.UserDAO.Db, 2, "bob")
	seedUser(t, s.UserDAO.Db, 3, "carol")
	err := s.UserDAO.Db.Model(&models.Users{}).
		Where("id = ?", 2).
		Update("avatar_key", "avatar/bob.jpg").Error
	if err != nil {
		t.Fatalf("set avatar: %v", err)
	}

	if err := s.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow bob: %v", err)
	}
	if err := s.Follow(ctx, 1, 3); err != nil {
		t.Fatalf("follow carol: %v", err)
	}

	list, total, err := s.GetFollowingList(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("GetFollowingList: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("total = %d, len = %d, want 2/2", total, len(list))
	}

	byID := make(map[uint64]string)
	for _, u := range list {
		if u.Username == "" {
			t.Errorf("user %d has empty username", u.Id)
		}
		byID[u.Id] = u.Avatar
	}
	if byID[2] != "https://cdn.example.com/avatar/bob.jpg" {
		t.Errorf("bob avatar = %q, want public URL", byID[2])
	}
	if byID[3] != "" {
		t.Errorf("carol avatar = %q, want empty", byID[3])
	}
}

func TestFollowValidation(t *testing.T) {
	s := newFollowService(t)
	ctx := context.Background()
	seedUser(t, s.UserDAO.Db, 1, "alice")

	if err := s.Follow(ctx, 1, 1); err == nil {
		t.Error("want error for self follow")
	}
	if err := s.Follow(ctx, 1, 999); err == nil {
		t.Error("want error for unknown followee")
	}
}
