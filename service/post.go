package service

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"Lumen/config"
	"Lumen/dao"
	"Lumen/models"
	"Lumen/pkg/response"
	"Lumen/pkg/snowflake"
	"Lumen/types"
)

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	Create(ctx context.Context, userID uint64, caption string, header *multipart.FileHeader) (*types.CreatePostResp, error)
	// Feed 公开 feed：只有过审的动态
	Feed(ctx context.Context, limit, offset int) ([]types.PostDTO, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]types.PostDTO, error)
	// PendingQueue 管理员审核队列
	PendingQueue(ctx context.Context, limit, offset int) ([]types.PostDTO, error)
	Review(ctx context.Context, postID int64, approve bool) error
}

type PostService struct {
	PostDAO  *dao.PostDAO
	StatsDAO *dao.PostStatsDAO
	UserDAO  *dao.Users
	Oss      IOssService
	OssCfg   *config.OssConfig
}

func (s *PostService) Create(ctx context.Context, userID uint64, caption string, header *multipart.FileHeader) (*types.CreatePostResp, error) {
	img, err := s.Oss.UploadImage(ctx, s.OssCfg.PublicBucket, "post", header)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	post := &models.Post{
		Id:        snowflake.GenID(),
		UserId:    userID,
		ObjectKey: img.ObjectKey,
		Caption:   caption,
		Status:    models.PostStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.PostDAO.Create(ctx, post); err != nil {
		return nil, err
	}

	return &types.CreatePostResp{
		PostId: post.Id,
		URL:    img.Url,
	}, nil
}

func (s *PostService) Feed(ctx context.Context, limit, offset int) ([]types.PostDTO, error) {
	return s.list(ctx, func(c context.Context) ([]models.Post, error) {
		return s.PostDAO.ListByStatus(c, models.PostStatusApproved, normalizeLimit(limit), offset)
	})
}

func (s *PostService) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]types.PostDTO, error) {
	return s.list(ctx, func(c context.Context) ([]models.Post, error) {
		return s.PostDAO.ListByUser(c, userID, normalizeLimit(limit), offset)
	})
}

func (s *PostService) PendingQueue(ctx context.Context, limit, offset int) ([]types.PostDTO, error) {
	return s.list(ctx, func(c context.Context) ([]models.Post, error) {
		return s.PostDAO.ListByStatus(c, models.PostStatusPending, normalizeLimit(limit), offset)
	})
}

func (s *PostService) Review(ctx context.Context, postID int64, approve bool) error {
	post, err := s.PostDAO.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return response.NewError(http.StatusNotFound, "动态不存在")
	}

	status := models.PostStatusRejected
	if approve {
		status = models.PostStatusApproved
	}
	return s.PostDAO.UpdateStatus(ctx, postID, status)
}

func (s *PostService) list(ctx context.Context, fetch func(context.Context) ([]models.Post, error)) ([]types.PostDTO, error) {
	posts, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(posts))
	postIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		userIDs = append(userIDs, p.UserId)
		postIDs = append(postIDs, p.Id)
	}
	users, err := s.UserDAO.FindByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	stats, err := s.StatsDAO.FindAllByWhere(ctx, "post_id IN ?", postIDs)
	if err != nil {
		return nil, err
	}
	statsMap := make(map[int64]models.PostStats, len(stats))
	for _, st := range stats {
		statsMap[st.PostId] = st
	}

	result := make([]types.PostDTO, 0, len(posts))
	for _, p := range posts {
		st := statsMap[p.Id]
		result = append(result, types.PostDTO{
			Id:           p.Id,
			Author:       userBrief(s.Oss, users[p.UserId]),
			URL:          s.Oss.PublicURL(p.ObjectKey),
			Caption:      p.Caption,
			Status:       p.Status,
			LikeCount:    st.LikeCount,
			CommentCount: st.CommentCount,
			CreatedAt:    p.CreatedAt.UnixMilli(),
		})
	}
	return result, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return types.DefaultPageSize
	}
	return limit
}
