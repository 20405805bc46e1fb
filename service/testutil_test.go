package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"

	"Lumen/config"
	"Lumen/models"
	"Lumen/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Users{},
		&models.UserStats{},
		&models.UserFollow{},
		&models.DirectMessage{},
		&models.Story{},
		&models.StoryView{},
		&models.Post{},
		&models.PostStats{},
		&models.PostLike{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testOssConfig() *config.OssConfig {
	return &config.OssConfig{
		PublicBucket:  "pub-test",
		PrivateBucket: "priv-test",
		PublicBaseURL: "https://cdn.example.com",
	}
}

func testProductConfig() *config.ProductConfig {
	return &config.ProductConfig{
		StoryDurationMs:     5000,
		StoryTickMs:         50,
		StoryTTLHours:       24,
		StorySignTTLSeconds: 3600,
		SearchLimit:         10,
		ChatbotHistoryTurns: 6,
	}
}

// fakeOss 不发网络请求，URL 直接由 objectKey 拼出来，方便断言
type fakeOss struct{}

func (fakeOss) UploadReader(ctx context.Context, bucket, objectKey string, reader io.Reader) error {
	return nil
}

func (fakeOss) Delete(ctx context.Context, bucket, objectKey string) error {
	return nil
}

func (fakeOss) SignURL(ctx context.Context, objectKey string, expireSeconds int64) (string, error) {
	return "https://signed.example.com/" + objectKey, nil
}

func (fakeOss) PublicURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	return "https://cdn.example.com/" + objectKey
}

func (fakeOss) UploadImage(ctx context.Context, bucket, keyPrefix string, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	key := fmt.Sprintf("%s/test/%s", keyPrefix, header.Filename)
	return &types.UploadImageResp{ObjectKey: key, Url: "https://cdn.example.com/" + key}, nil
}

func seedUser(t *testing.T, db *gorm.DB, id uint64, username string) {
	t.Helper()
	u := models.Users{Id: id, Username: username, Nickname: username}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}
