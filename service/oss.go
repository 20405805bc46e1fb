package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"Lumen/config"
	"Lumen/pkg/snowflake"
	"Lumen/types"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

type OssService struct {
	Client *oss.Client
	Cfg    *config.OssConfig
}

var _ IOssService = (*OssService)(nil)

type IOssService interface {
	// UploadReader 上传流（HTTP / 表单上传）
	UploadReader(ctx context.Context, bucket, objectKey string, reader io.Reader) error

	// Delete 删除对象
	Delete(ctx context.Context, bucket, objectKey string) error

	// SignURL 生成私有桶临时访问 URL（秒）
	SignURL(ctx context.Context, objectKey string, expireSeconds int64) (string, error)

	// PublicURL 公开桶永久 URL
	PublicURL(objectKey string) string

	// UploadImage 校验并上传图片，keyPrefix 形如 "story" / "post" / "avatar"
	UploadImage(ctx context.Context, bucket, keyPrefix string, header *multipart.FileHeader) (*types.UploadImageResp, error)
}

func NewOssService(cfg *config.OssConfig) IOssService {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	client := oss.NewClient(ossCfg)

	return &OssService{
		Client: client,
		Cfg:    cfg,
	}
}

func (s *OssService) UploadImage(ctx context.Context, bucket, keyPrefix string, header *multipart.FileHeader) (*types.UploadImageResp, error) {

	const maxSize int64 = 10 << 20 // 10MB

	if header == nil {
		return nil, fmt.Errorf("missing image")
	}
	// header.Size 不可信，但可做第一道拦截
	if header.Size <= 0 || header.Size > maxSize {
		return nil, fmt.Errorf("image size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// 要能 Seek，否则无法在读头校验后再上传同一份流
	seeker, ok := f.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("uploaded file is not seekable")
	}

	// 1) MIME 校验（读取前 512 bytes）
	head := make([]byte, 512)
	n, _ := seeker.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return nil, fmt.Errorf("unsupported image type: %s", contentType)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	// 2) 读取尺寸 + 格式（不解码全图）
	cfg, format, err := image.DecodeConfig(seeker)
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}
	format = strings.ToLower(format)
	allowedFmt := map[string]bool{"jpeg": true, "png": true, "webp": true}
	if !allowedFmt[format] {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	// 3) 生成 objectKey
	imageID := snowflake.GenID()
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	objectKey := fmt.Sprintf("%s/%s/%d%s",
		keyPrefix,
		time.Now().Format("2006/01/02"),
		imageID,
		ext,
	)

	// 4) 上传（强制限制读取）
	limited := io.LimitReader(seeker, maxSize+1)

	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return nil, err
	}

	resp := &types.UploadImageResp{
		ObjectKey: objectKey,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}
	// 私有桶不回永久 URL，由调用方按需签名
	if bucket == s.Cfg.PublicBucket {
		resp.Url = s.PublicURL(objectKey)
	}
	return resp, nil
}

// UploadReader 上传 Reader（HTTP 上传场景）
func (s *OssService) UploadReader(
	ctx context.Context,
	bucket, objectKey string,
	reader io.Reader,
) error {
	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(objectKey),
		Body:   reader,
	})
	return err
}

// Delete 删除对象
func (s *OssService) Delete(
	ctx context.Context,
	bucket, objectKey string,
) error {

	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(objectKey),
	})
	return err
}

// SignURL 生成私有桶临时访问 URL
func (s *OssService) SignURL(
	ctx context.Context,
	objectKey string,
	expireSeconds int64,
) (string, error) {

	result, err := s.Client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.Cfg.PrivateBucket),
		Key:    oss.Ptr(objectKey),
	}, oss.PresignExpires(time.Duration(expireSeconds)*time.Second))
	if err != nil {
		return "", err
	}

	return result.URL, nil
}

func (s *OssService) PublicURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	return strings.TrimRight(s.Cfg.PublicBaseURL, "/") + "/" + objectKey
}
