package handler

import (
	"net/http"

	"Lumen/pkg/context"
	"Lumen/pkg/response"
	"Lumen/service"
	"Lumen/types"

	"github.com/gin-gonic/gin"
)

type Chatbot struct {
	ChatbotService service.IChatbotService
}

func (h *Chatbot) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/chatbot")
	g.POST("/ask", context.Wrap(h.Ask))
}

// Ask 访客匿名提问，session_id 由前端生成并保持
func (h *Chatbot) Ask(c *gin.Context) error {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.ChatbotService.Ask(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}
