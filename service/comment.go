package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"Lumen/dao"
	"Lumen/models"
	"Lumen/pkg/response"
	"Lumen/pkg/snowflake"
	"Lumen/types"
)

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	Create(ctx context.Context, userID uint64, postID int64, content string) (*types.CommentDTO, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]types.CommentDTO, error)
}

type CommentService struct {
	CommentDAO *dao.CommentDAO
	PostDAO    *dao.PostDAO
	StatsDAO   *dao.PostStatsDAO
	UserDAO    *dao.Users
	Oss        IOssService
}

func (s *CommentService) Create(ctx context.Context, userID uint64, postID int64, content string) (*types.CommentDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.NewError(http.StatusBadRequest, "评论不能为空")
	}

	post, err := s.PostDAO.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != models.PostStatusApproved {
		return nil, response.NewError(http.StatusNotFound, "动态不存在")
	}

	comment := &models.Comment{
		Id:        snowflake.GenID(),
		PostId:    postID,
		UserId:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.CommentDAO.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.StatsDAO.IncrCommentCount(ctx, postID, 1); err != nil {
		return nil, err
	}

	author, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &types.CommentDTO{
		Id:        comment.Id,
		PostId:    postID,
		Author:    userBrief(s.Oss, author),
		Content:   content,
		CreatedAt: comment.CreatedAt.UnixMilli(),
	}, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]types.CommentDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = types.DefaultPageSize
	}

	comments, err := s.CommentDAO.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserId)
	}
	users, err := s.UserDAO.FindByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]types.CommentDTO, 0, len(comments))
	for _, c := range comments {
		result = append(result, types.CommentDTO{
			Id:        c.Id,
			PostId:    c.PostId,
			Author:    userBrief(s.Oss, users[c.UserId]),
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UnixMilli(),
		})
	}
	return result, nil
}
