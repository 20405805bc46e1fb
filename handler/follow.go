package handler

import (
	"net/http"
	"strconv"

	"Lumen/config"
	"Lumen/middleware"
	"Lumen/pkg/context"
	"Lumen/pkg/response"
	"Lumen/service"
	"Lumen/types"

	"github.com/gin-gonic/gin"
)

type Follow struct {
	Config        *config.Config
	FollowService service.IFollowService
}

func (h *Follow) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/follow")
	g.POST("/:user_id/follow", authorize, context.Wrap(h.FollowUser))
	g.DELETE("/:user_id/follow", authorize, context.Wrap(h.UnfollowUser))
	g.GET("/:user_id/follow", authorize, context.Wrap(h.GetFollowStatus))
	g.GET("/:user_id/followers/count", context.Wrap(h.GetFollowerCount))
	g.GET("/:user_id/following/count", context.Wrap(h.GetFollowingCount))
	g.GET("/list", authorize, context.Wrap(h.GetFollowingList))
}

func parseUserID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return 0, response.NewError(http.StatusBadRequest, "user_id 格式错误")
	}
	return id, nil
}

// FollowUser 关注用户
func (h *Follow) FollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.FollowService.Follow(c.Request.Context(), userID, targetID); err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	response.Success(c, gin.H{"followed": true})
	return nil
}

// UnfollowUser 取消关注
func (h *Follow) UnfollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.FollowService.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	response.Success(c, gin.H{"followed": false})
	return nil
}

// GetFollowStatus 是否已关注
func (h *Follow) GetFollowStatus(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	following, err := h.FollowService.IsFollowing(c.Request.Context(), userID, targetID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"following": following})
	return nil
}

// GetFollowerCount 粉丝数
func (h *Follow) GetFollowerCount(c *gin.Context) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	count, err := h.FollowService.GetFollowerCount(c.Request.Context(), targetID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"count": count})
	return nil
}

// GetFollowingCount 关注数
func (h *Follow) GetFollowingCount(c *gin.Context) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	count, err := h.FollowService.GetFollowingCount(c.Request.Context(), targetID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"count": count})
	return nil
}

// GetFollowingList 关注列表（分页）
func (h *Follow) GetFollowingList(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.GetFollowingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = types.DefaultPageSize
	}

	list, total, err := h.FollowService.GetFollowingList(c.Request.Context(), userID, req.PageSize, req.Cursor)
	if err != nil {
		return err
	}

	response.Success(c, types.GetFollowingListResponse{
		Following: list,
		Total:     total,
		HasMore:   int64(req.Cursor+len(list)) < total,
	})
	return nil
}
