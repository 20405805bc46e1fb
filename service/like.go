package service

import (
	"context"
	"errors"

	"Lumen/dao"
)

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	Like(ctx context.Context, userID uint64, postID int64) error
	Unlike(ctx context.Context, userID uint64, postID int64) error
	IsLiked(ctx context.Context, userID uint64, postID int64) (bool, error)
	GetLikeCount(ctx context.Context, postID int64) (int64, error)
}

type LikeService struct {
	LikeDAO  *dao.PostLikeDAO
	StatsDAO *dao.PostStatsDAO
	PostDAO  *dao.PostDAO
}

func (s *LikeService) Like(ctx context.Context, userID uint64, postID int64) error {
	exist, err := s.PostDAO.IsExist(ctx, "id = ?", postID)
	if err != nil {
		return err
	}
	if !exist {
		return errors.New("动态不存在")
	}

	isLiked, err := s.LikeDAO.IsLiked(ctx, postID, userID)
	if err != nil {
		return err
	}
	if isLiked {
		// 已经点赞过，不做任何操作
		return nil
	}

	if err := s.LikeDAO.SetStatus(ctx, postID, userID, 1); err != nil {
		return err
	}
	// 计数 +1（只有在之前未点赞时才增加）
	return s.StatsDAO.IncrLikeCount(ctx, postID, 1)
}

func (s *LikeService) Unlike(ctx context.Context, userID uint64, postID int64) error {
	exist, err := s.PostDAO.IsExist(ctx, "id = ?", postID)
	if err != nil {
		return err
	}
	if !exist {
		return errors.New("动态不存在")
	}

	isLiked, err := s.LikeDAO.IsLiked(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !isLiked {
		return nil
	}

	if err := s.LikeDAO.SetStatus(ctx, postID, userID, 0); err != nil {
		return err
	}
	return s.StatsDAO.IncrLikeCount(ctx, postID, -1)
}

func (s *LikeService) IsLiked(ctx context.Context, userID uint64, postID int64) (bool, error) {
	return s.LikeDAO.IsLiked(ctx, postID, userID)
}

func (s *LikeService) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	stat, err := s.StatsDAO.GetByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if stat == nil {
		return 0, nil
	}
	return int64(stat.LikeCount), nil
}
