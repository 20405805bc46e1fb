package service

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"Lumen/config"
	"Lumen/dao"
	"Lumen/pkg/response"
	"Lumen/types"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	GetProfile(ctx context.Context, userID uint64) (*types.ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *types.UpdateProfileRequest) error
	UploadAvatar(ctx context.Context, userID uint64, header *multipart.FileHeader) (*types.UploadImageResp, error)
}

type UserService struct {
	UserDAO  *dao.Users
	StatsDAO *dao.UserStatsDAO
	Oss      IOssService
	OssCfg   *config.OssConfig
}

func (s *UserService) GetProfile(ctx context.Context, userID uint64) (*types.ProfileDTO, error) {
	user, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "用户不存在")
	}

	dto := &types.ProfileDTO{
		UserBrief: userBrief(s.Oss, user),
		Bio:       user.Bio,
	}

	stats, err := s.StatsDAO.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		dto.FollowerCount = stats.FollowerCount
		dto.FollowingCount = stats.FollowingCount
	}
	return dto, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, req *types.UpdateProfileRequest) error {
	updates := map[string]any{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	return s.UserDAO.UpdateById(ctx, userID, updates)
}

// UploadAvatar 头像走公开桶，URL 永久有效
func (s *UserService) UploadAvatar(ctx context.Context, userID uint64, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	img, err := s.Oss.UploadImage(ctx, s.OssCfg.PublicBucket, "avatar", header)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, err.Error())
	}

	err = s.UserDAO.UpdateById(ctx, userID, map[string]any{
		"avatar_key": img.ObjectKey,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
