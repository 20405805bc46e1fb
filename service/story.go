package service

import (
	"context"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"Lumen/config"
	"Lumen/dao"
	"Lumen/models"
	"Lumen/pkg/log"
	"Lumen/pkg/response"
	"Lumen/pkg/snowflake"
	"Lumen/types"

	"go.uber.org/zap"
)

var _ IStoryService = (*StoryService)(nil)

type IStoryService interface {
	// LoadStories viewerID 为 0 表示未登录观众
	LoadStories(ctx context.Context, viewerID uint64) ([]*types.StoryBucketDTO, error)
	MarkViewed(ctx context.Context, storyID int64, viewerID uint64) error
	UploadStory(ctx context.Context, userID uint64, caption string, header *multipart.FileHeader) (*types.UploadStoryResp, error)
}

type StoryService struct {
	StoryDAO     *dao.StoryDAO
	StoryViewDAO *dao.StoryViewDAO
	UserDAO      *dao.Users
	Oss          IOssService
	OssCfg       *config.OssConfig
	Product      *config.ProductConfig
}

func (s *StoryService) LoadStories(ctx context.Context, viewerID uint64) ([]*types.StoryBucketDTO, error) {
	nowMs := time.Now().UnixMilli()

	stories, err := s.StoryDAO.ListActive(ctx, nowMs)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return []*types.StoryBucketDTO{}, nil
	}

	// 作者去重，保留发现顺序
	authorOrder := make([]uint64, 0)
	seen := make(map[uint64]struct{})
	storyIDs := make([]int64, 0, len(stories))
	for _, st := range stories {
		storyIDs = append(storyIDs, st.Id)
		if _, ok := seen[st.UserId]; !ok {
			seen[st.UserId] = struct{}{}
			authorOrder = append(authorOrder, st.UserId)
		}
	}

	authors, err := s.UserDAO.FindByIds(ctx, authorOrder)
	if err != nil {
		return nil, err
	}

	viewed := map[int64]struct{}{}
	if viewerID > 0 {
		viewed, err = s.StoryViewDAO.ViewedSet(ctx, viewerID, storyIDs)
		if err != nil {
			return nil, err
		}
	}

	// 按作者分桶
	buckets := make(map[uint64]*types.StoryBucketDTO, len(authorOrder))
	for _, uid := range authorOrder {
		buckets[uid] = &types.StoryBucketDTO{
			Author:  userBrief(s.Oss, authors[uid]),
			Stories: make([]types.StoryDTO, 0, 4),
		}
	}

	signTTL := int64(s.Product.StorySignTTLSeconds)
	for _, st := range stories {
		url, err := s.Oss.SignURL(ctx, st.ObjectKey, signTTL)
		if err != nil {
			// 单条签名失败跳过该条，不让整个列表挂掉
			log.L.Warn("sign story url failed", zap.Error(err), zap.Int64("story_id", st.Id))
			continue
		}

		_, isViewed := viewed[st.Id]
		bucket := buckets[st.UserId]
		bucket.Stories = append(bucket.Stories, types.StoryDTO{
			Id:         st.Id,
			UserId:     st.UserId,
			URL:        url,
			Caption:    st.Caption,
			CreatedAt:  st.CreatedAt,
			ExpiresAt:  st.ExpiresAt,
			ViewsCount: st.ViewsCount,
			Viewed:     isViewed,
		})
		if !isViewed {
			bucket.HasUnviewed = true
		}
	}

	result := make([]*types.StoryBucketDTO, 0, len(authorOrder))
	for _, uid := range authorOrder {
		if len(buckets[uid].Stories) > 0 {
			result = append(result, buckets[uid])
		}
	}

	// 排序：自己的桶最前，然后是有未看内容的，其余靠后；同级保持发现顺序
	rank := func(b *types.StoryBucketDTO) int {
		switch {
		case viewerID > 0 && b.Author.Id == viewerID:
			return 0
		case b.HasUnviewed:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return rank(result[i]) < rank(result[j])
	})

	return result, nil
}

// MarkViewed 记录观看。作者看自己的快拍不记录；同一观众重复看同一条
// 不会产生第二条记录，浏览计数也只在首次观看时 +1（原子更新）。
func (s *StoryService) MarkViewed(ctx context.Context, storyID int64, viewerID uint64) error {
	story, err := s.StoryDAO.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return response.NewError(http.StatusNotFound, "快拍不存在")
	}
	if story.UserId == viewerID {
		return nil
	}

	created, err := s.StoryViewDAO.Record(ctx, storyID, viewerID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	return s.StoryDAO.IncrViews(ctx, storyID)
}

func (s *StoryService) UploadStory(ctx context.Context, userID uint64, caption string, header *multipart.FileHeader) (*types.UploadStoryResp, error) {
	// 类型和大小校验在 UploadImage 里，不合法不会发起任何网络调用
	img, err := s.Oss.UploadImage(ctx, s.OssCfg.PrivateBucket, "story", header)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	story := &models.Story{
		Id:        snowflake.GenID(),
		UserId:    userID,
		ObjectKey: img.ObjectKey,
		Caption:   caption,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.Product.StoryTTL()).UnixMilli(),
		UpdatedAt: now,
	}
	if err := s.StoryDAO.Create(ctx, story); err != nil {
		// 对象已传成功而元数据落库失败时会留下孤儿对象，这里不做回滚清理
		return nil, err
	}

	url, err := s.Oss.SignURL(ctx, story.ObjectKey, int64(s.Product.StorySignTTLSeconds))
	if err != nil {
		log.L.Warn("sign story url failed", zap.Error(err), zap.Int64("story_id", story.Id))
	}

	return &types.UploadStoryResp{
		StoryId:   story.Id,
		URL:       url,
		ExpiresAt: story.ExpiresAt,
	}, nil
}
