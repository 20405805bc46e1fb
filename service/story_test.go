package service

import (
	"context"
	"testing"
	"time"

	"Lumen/dao"
	"Lumen/models"
)

func newStoryService(t *testing.T) *StoryService {
	t.Helper()
	db := setupTestDB(t)
	return &StoryService{
		StoryDAO:     dao.NewStoryDAO(db),
		StoryViewDAO: dao.NewStoryViewDAO(db),
		UserDAO:      dao.NewUsers(db),
		Oss:          fakeOss{},
		OssCfg:       testOssConfig(),
		Product:      testProductConfig(),
	}
}

func seedStory(t *testing.T, s *StoryService, id int64, author uint64, expiresAt int64) {
	t.Helper()
	story := models.Story{
		Id:        id,
		UserId:    author,
		ObjectKey: "story/test/obj",
		CreatedAt: time.Now().UnixMilli(),
		ExpiresAt: expiresAt,
	}
	if err := s.StoryDAO.Create(context.Background(), &story); err != nil {
		t.Fatalf("seed story %d: %v", id, err)
	}
}

func TestLoadStoriesFiltersExpired(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	nowMs := time.Now().UnixMilli()

	seedUser(t, s.StoryDAO.Db, 1, "alice")
	seedStory(t, s, 1, 1, nowMs+time.Hour.Milliseconds())
	seedStory(t, s, 2, 1, nowMs-1) // 已过期

	buckets, err := s.LoadStories(ctx, 0)
	if err != nil {
		t.Fatalf("LoadStories: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("want 1 bucket, got %d", len(buckets))
	}
	if len(buckets[0].Stories) != 1 || buckets[0].Stories[0].Id != 1 {
		t.Fatalf("expired story leaked: %+v", buckets[0].Stories)
	}
}

func TestLoadStoriesBucketOrder(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	expires := time.Now().UnixMilli() + time.Hour.Milliseconds()

	seedUser(t, s.StoryDAO.Db, 1, "alice")
	seedUser(t, s.StoryDAO.Db, 2, "bob")
	seedUser(t, s.StoryDAO.Db, 3, "carol")

	seedStory(t, s, 1, 2, expires) // bob
	seedStory(t, s, 2, 3, expires) // carol
	seedStory(t, s, 3, 1, expires) // alice 自己

	// alice 把 carol 的都看完了
	if _, err := s.StoryViewDAO.Record(ctx, 2, 1); err != nil {
		t.Fatalf("record view: %v", err)
	}

	buckets, err := s.LoadStories(ctx, 1)
	if err != nil {
		t.Fatalf("LoadStories: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("want 3 buckets, got %d", len(buckets))
	}

	// 自己的最前，然后未看完的 bob，看完的 carol 垫底
	if buckets[0].Author.Id != 1 {
		t.Errorf("bucket[0] = %d, want own bucket first", buckets[0].Author.Id)
	}
	if buckets[1].Author.Id != 2 || !buckets[1].HasUnviewed {
		t.Errorf("bucket[1] = %d (unviewed=%v), want bob with unviewed", buckets[1].Author.Id, buckets[1].HasUnviewed)
	}
	if buckets[2].Author.Id != 3 || buckets[2].HasUnviewed {
		t.Errorf("bucket[2] = %d (unviewed=%v), want carol fully viewed", buckets[2].Author.Id, buckets[2].HasUnviewed)
	}
	if !buckets[2].Stories[0].Viewed {
		t.Error("carol's story should be flagged viewed")
	}
}

func TestMarkViewedIdempotent(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	expires := time.Now().UnixMilli() + time.Hour.Milliseconds()

	seedUser(t, s.StoryDAO.Db, 1, "alice")
	seedUser(t, s.StoryDAO.Db, 2, "bob")
	seedStory(t, s, 1, 1, expires)

	// bob 连看三次，计数只 +1
	for i := 0; i < 3; i++ {
		if err := s.MarkViewed(ctx, 1, 2); err != nil {
			t.Fatalf("MarkViewed #%d: %v", i, err)
		}
	}

	story, err := s.StoryDAO.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if story.ViewsCount != 1 {
		t.Errorf("views = %d, want 1", story.ViewsCount)
	}

	var views int64
	s.StoryDAO.Db.Model(&models.StoryView{}).Count(&views)
	if views != 1 {
		t.Errorf("view rows = %d, want 1", views)
	}
}

func TestMarkViewedOwnerSkipped(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	expires := time.Now().UnixMilli() + time.Hour.Milliseconds()

	seedUser(t, s.StoryDAO.Db, 1, "alice")
	seedStory(t, s, 1, 1, expires)

	// 作者看自己的不计数
	if err := s.MarkViewed(ctx, 1, 1); err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}

	story, _ := s.StoryDAO.GetByID(ctx, 1)
	if story.ViewsCount != 0 {
		t.Errorf("views = %d, want 0", story.ViewsCount)
	}
}

func TestMarkViewedUnknownStory(t *testing.T) {
	s := newStoryService(t)
	seedUser(t, s.StoryDAO.Db, 1, "alice")

	if err := s.MarkViewed(context.Background(), 999, 1); err == nil {
		t.Fatal("want error for unknown story")
	}
}
