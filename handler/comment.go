package handler

import (
	"net/http"

	"Lumen/config"
	"Lumen/middleware"
	"Lumen/pkg/context"
	"Lumen/pkg/response"
	"Lumen/service"
	"Lumen/types"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	Config         *config.Config
	CommentService service.ICommentService
}

func (h *Comment) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/post/:post_id/comment")
	g.GET("", context.Wrap(h.List))
	g.POST("", authorize, context.Wrap(h.Create))
}

// Create 评论动态
func (h *Comment) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.CommentService.Create(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		return err
	}

	response.Success(c, comment)
	return nil
}

// List 动态下的评论（正序）
func (h *Comment) List(c *gin.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	comments, err := h.CommentService.ListByPost(c.Request.Context(), postID, limit, offset)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"comments": comments})
	return nil
}
