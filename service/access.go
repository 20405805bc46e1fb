package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"Lumen/config"
	"Lumen/dao/cache"
	"Lumen/pkg/jwt"
	"Lumen/pkg/log"
	"Lumen/pkg/response"
	"Lumen/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 私密访问授权有效期
const accessGrantExpire = 24 * time.Hour

var _ IAccessService = (*AccessService)(nil)

// IAccessService 私密区访问控制：邮箱验证码换取文档访问令牌
type IAccessService interface {
	RequestCode(ctx context.Context, email string) (*types.RequestCodeResponse, error)
	VerifyCode(ctx context.Context, requestID, code string) (*types.VerifyCodeResponse, error)
	ListDocuments(ctx context.Context) ([]types.DocumentDTO, error)
}

type AccessService struct {
	OtpStorage *cache.OtpStorage
	Oss        IOssService
	Config     *config.Config
}

func (s *AccessService) RequestCode(ctx context.Context, email string) (*types.RequestCodeResponse, error) {
	requestID := uuid.NewString()
	code := fmt.Sprintf("%06d", rand.IntN(1000000))

	if err := s.OtpStorage.Set(ctx, requestID, code); err != nil {
		return nil, err
	}

	// TODO: 接入邮件服务商，把验证码投递到 email
	if s.Config.Debug() {
		log.L.Info("otp code issued", zap.String("email", email), zap.String("code", code))
	} else {
		log.L.Info("otp code issued", zap.String("email", email), zap.String("request_id", requestID))
	}

	return &types.RequestCodeResponse{RequestID: requestID}, nil
}

func (s *AccessService) VerifyCode(ctx context.Context, requestID, code string) (*types.VerifyCodeResponse, error) {
	err := s.OtpStorage.Verify(ctx, requestID, code)
	if errors.Is(err, cache.ErrOtpNotFound) || errors.Is(err, cache.ErrOtpTooManyTrys) {
		return nil, response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return nil, err
	}

	// 验证通过签发文档访问令牌，uid=0：授权不绑定注册用户
	token, err := jwt.GenerateToken(
		[]byte(s.Config.Jwt.Secret),
		0,
		false,
		jwt.TypeAccessGrant,
		accessGrantExpire,
	)
	if err != nil {
		return nil, err
	}
	return &types.VerifyCodeResponse{GrantToken: token}, nil
}

// ListDocuments 私密文档（简历、成绩单等）的临时签名 URL
func (s *AccessService) ListDocuments(ctx context.Context) ([]types.DocumentDTO, error) {
	keys := s.Config.Product.DocumentKeys
	result := make([]types.DocumentDTO, 0, len(keys))
	for _, key := range keys {
		url, err := s.Oss.SignURL(ctx, key, int64(s.Config.Product.StorySignTTLSeconds))
		if err != nil {
			return nil, err
		}
		result = append(result, types.DocumentDTO{Name: key, URL: url})
	}
	return result, nil
}
