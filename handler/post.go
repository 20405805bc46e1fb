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

type Post struct {
	Config      *config.Config
	PostService service.IPostService
	LikeService service.ILikeService
}

func (h *Post) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)

	g := r.Group("/v1/post")
	g.GET("/feed", context.Wrap(h.Feed))
	g.GET("/user/:user_id", context.Wrap(h.ListByUser))
	g.POST("/create", authorize, context.Wrap(h.Create))
	g.POST("/:post_id/like", authorize, context.Wrap(h.Like))
	g.DELETE("/:post_id/like", authorize, context.Wrap(h.Unlike))
	g.GET("/:post_id/like", authorize, context.Wrap(h.LikeStatus))

	admin := r.Group("/v1/admin/post", authorize, middleware.Admin())
	admin.GET("/pending", context.Wrap(h.PendingQueue))
	admin.POST("/:post_id/review", context.Wrap(h.Review))
}

func pageParams(c *gin.Context) (limit, offset int) {
	var req types.ListPostsRequest
	_ = c.ShouldBindQuery(&req)
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = types.DefaultPageSize
	}
	if req.Page < 1 {
		req.Page = 1
	}
	return req.PageSize, (req.Page - 1) * req.PageSize
}

func parsePostID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		return 0, response.NewError(http.StatusBadRequest, "post_id 格式错误")
	}
	return id, nil
}

// Feed 公开 feed，只含过审动态
func (h *Post) Feed(c *gin.Context) error {
	limit, offset := pageParams(c)

	posts, err := h.PostService.Feed(c.Request.Context(), limit, offset)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"posts": posts})
	return nil
}

// ListByUser 某作者的动态
func (h *Post) ListByUser(c *gin.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "user_id 格式错误")
	}
	limit, offset := pageParams(c)

	posts, err := h.PostService.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"posts": posts})
	return nil
}

// Create 发布动态，进待审核队列
func (h *Post) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少文件")
	}
	caption := c.PostForm("caption")

	resp, err := h.PostService.Create(c.Request.Context(), userID, caption, header)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// Like 点赞
func (h *Post) Like(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.LikeService.Like(c.Request.Context(), userID, postID); err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	response.Success(c, gin.H{"liked": true})
	return nil
}

// Unlike 取消点赞
func (h *Post) Unlike(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.LikeService.Unlike(c.Request.Context(), userID, postID); err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}

	response.Success(c, gin.H{"liked": false})
	return nil
}

// LikeStatus 是否已点赞 + 总数
func (h *Post) LikeStatus(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	liked, err := h.LikeService.IsLiked(c.Request.Context(), userID, postID)
	if err != nil {
		return err
	}
	count, err := h.LikeService.GetLikeCount(c.Request.Context(), postID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"liked": liked, "count": count})
	return nil
}

// PendingQueue 管理员审核队列
func (h *Post) PendingQueue(c *gin.Context) error {
	limit, offset := pageParams(c)

	posts, err := h.PostService.PendingQueue(c.Request.Context(), limit, offset)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"posts": posts})
	return nil
}

// Review 审核通过 / 拒绝
func (h *Post) Review(c *gin.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req types.ReviewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.PostService.Review(c.Request.Context(), postID, req.Action == "approve"); err != nil {
		return err
	}

	response.Success(c, gin.H{"reviewed": true})
	return nil
}
