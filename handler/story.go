package handler

import (
	"net/http"
	"strconv"

	"Lumen/config"
	"Lumen/middleware"
	"Lumen/pkg/context"
	"Lumen/pkg/response"
	"Lumen/service"

	"github.com/gin-gonic/gin"
)

type Story struct {
	Config       *config.Config
	StoryService service.IStoryService
}

func (h *Story) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	g := r.Group("/v1/story")
	// 游客也能看快拍，带 token 时才能记录已读状态
	g.GET("/list", middleware.AuthOptional(secret), context.Wrap(h.List))
	g.POST("/upload", middleware.Auth(secret), context.Wrap(h.Upload))
	g.POST("/:story_id/view", middleware.Auth(secret), context.Wrap(h.MarkViewed))
}

// List 按作者分组的有效快拍（24 小时内）
func (h *Story) List(c *gin.Context) error {
	viewerID, _ := context.GetUserID(c) // 未登录为 0

	buckets, err := h.StoryService.LoadStories(c.Request.Context(), viewerID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"buckets": buckets})
	return nil
}

// Upload 发布快拍
func (h *Story) Upload(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少文件")
	}
	caption := c.PostForm("caption")

	resp, err := h.StoryService.UploadStory(c.Request.Context(), userID, caption, header)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// MarkViewed 上报观看。同一观众重复上报是幂等的。
func (h *Story) MarkViewed(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	storyID, err := strconv.ParseInt(c.Param("story_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "story_id 格式错误")
	}

	if err := h.StoryService.MarkViewed(c.Request.Context(), storyID, userID); err != nil {
		return err
	}

	response.Success(c, gin.H{"viewed": true})
	return nil
}
