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

// Access 私密访问：邮箱验证码换授权令牌，拿令牌看私密文档
type Access struct {
	Config        *config.Config
	AccessService service.IAccessService
}

func (h *Access) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/access")
	g.POST("/request-code", context.Wrap(h.RequestCode))
	g.POST("/verify", context.Wrap(h.Verify))
	g.GET("/documents", middleware.AccessGrant([]byte(h.Config.Jwt.Secret)), context.Wrap(h.Documents))
}

// RequestCode 发送验证码
func (h *Access) RequestCode(c *gin.Context) error {
	var req types.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.AccessService.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// Verify 校验验证码，成功签发 grant token
func (h *Access) Verify(c *gin.Context) error {
	var req types.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.AccessService.VerifyCode(c.Request.Context(), req.RequestID, req.Code)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// Documents 私密文档签名 URL 列表
func (h *Access) Documents(c *gin.Context) error {
	docs, err := h.AccessService.ListDocuments(c.Request.Context())
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"documents": docs})
	return nil
}
