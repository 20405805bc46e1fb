package service

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"
)

// 超限/非法大小必须在打开文件前就拦下。Client 置空，
// 一旦漏到 PutObject 会直接 panic，测试立刻暴露
func TestUploadImageSizeGuard(t *testing.T) {
	s := &OssService{Client: nil, Cfg: testOssConfig()}

	tests := []struct {
		name   string
		header *multipart.FileHeader
	}{
		{"nil header", nil},
		{"zero size", &multipart.FileHeader{Filename: "a.jpg", Size: 0}},
		{"negative size", &multipart.FileHeader{Filename: "a.jpg", Size: -1}},
		{"12MB", &multipart.FileHeader{Filename: "big.jpg", Size: 12 << 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UploadImage(context.Background(), "pub-test", "story", tt.header)
			if err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}

// 12MB 走的是大小拦截，不是 Open 失败之类的别的分支
func TestUploadImageOversizeErrorIsSizeCheck(t *testing.T) {
	s := &OssService{Client: nil, Cfg: testOssConfig()}

	header := &multipart.FileHeader{Filename: "big.jpg", Size: 12 << 20}
	_, err := s.UploadImage(context.Background(), "pub-test", "story", header)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "size") {
		t.Fatalf("expected size error, got %v", err)
	}
}
