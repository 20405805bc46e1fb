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

type Message struct {
	Config         *config.Config
	MessageService service.IMessageService
}

func (h *Message) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/message", authorize)
	g.GET("/conversations", context.Wrap(h.Conversations))
	g.GET("/chat/:peer_id", context.Wrap(h.OpenChat))
	g.POST("/send", context.Wrap(h.Send))
	g.GET("/search", context.Wrap(h.SearchUsers))
}

// Conversations 会话列表（每个对端一条，带未读数）
func (h *Message) Conversations(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	list, err := h.MessageService.LoadConversations(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"conversations": list})
	return nil
}

// OpenChat 打开与某人的聊天：返回完整历史并把未读清零
func (h *Message) OpenChat(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "peer_id 格式错误")
	}

	history, err := h.MessageService.OpenChat(c.Request.Context(), userID, peerID)
	if err != nil {
		return err
	}

	response.Success(c, history)
	return nil
}

// Send 发送私信
func (h *Message) Send(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.MessageService.SendMessage(c.Request.Context(), userID, req.ReceiverId, req.Content)
	if err != nil {
		return err
	}

	response.Success(c, msg)
	return nil
}

// SearchUsers 新建会话时按用户名搜索
func (h *Message) SearchUsers(c *gin.Context) error {
	if _, err := context.GetUserID(c); err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.SearchUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	users, err := h.MessageService.SearchUsers(c.Request.Context(), req.Query)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"users": users})
	return nil
}
