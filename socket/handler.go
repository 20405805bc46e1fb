package socket

import (
	"net/http"

	"Lumen/config"
	"Lumen/pkg/jwt"
	"Lumen/pkg/log"
	"Lumen/pkg/snowflake"
	"Lumen/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	Config  *config.Config
	Hub     *Hub
	Message service.IMessageService
	Story   service.IStoryService
}

func (h *Handler) RegisterRouter(r gin.IRouter) {
	r.GET("/ws", h.HandleWS)
}

func (h *Handler) HandleWS(c *gin.Context) {
	// 浏览器的 WebSocket 不能带自定义 header，token 走 query
	token := c.Query("token")
	if token == "" {
		c.Status(http.StatusUnauthorized)
		return
	}

	claims, err := jwt.ParseToken([]byte(h.Config.Jwt.Secret), jwt.TypeAccess, token)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(snowflake.GenID(), claims.UserID, conn, h.Message, h.Story, h.Config.Product)
	h.Hub.Register(client)
	log.L.Info("ws connected", zap.Uint64("uid", claims.UserID), zap.Int("online", h.Hub.OnlineCount()))

	defer func() {
		h.Hub.Unregister(client)
		client.Close()
		log.L.Info("ws disconnected", zap.Uint64("uid", claims.UserID))
	}()

	client.Start(c.Request.Context())
}
