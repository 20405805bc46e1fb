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

type User struct {
	Config      *config.Config
	UserService service.IUserService
}

func (h *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/user")
	g.GET("/me", authorize, context.Wrap(h.Me))
	g.PUT("/me", authorize, context.Wrap(h.UpdateProfile))
	g.POST("/me/avatar", authorize, context.Wrap(h.UploadAvatar))
	g.GET("/:user_id/profile", context.Wrap(h.GetProfile))
}

// Me 当前登录用户资料
func (h *User) Me(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	profile, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	response.Success(c, profile)
	return nil
}

// GetProfile 查看指定用户的公开资料
func (h *User) GetProfile(c *gin.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "user_id 格式错误")
	}

	profile, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	response.Success(c, profile)
	return nil
}

// UpdateProfile 更新昵称 / 简介
func (h *User) UpdateProfile(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.UserService.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		return err
	}

	response.Success(c, gin.H{"updated": true})
	return nil
}

// UploadAvatar 上传头像
func (h *User) UploadAvatar(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少文件")
	}

	resp, err := h.UserService.UploadAvatar(c.Request.Context(), userID, header)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}
