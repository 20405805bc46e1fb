package middleware

import (
	"net/http"
	"strings"

	"Lumen/pkg/jwt"
	"Lumen/pkg/response"

	"github.com/gin-gonic/gin"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret, jwt.TypeAccess)
		if !ok {
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// AuthOptional 可选登录：带合法 token 就注入 user_id，不带也放行。
// 游客可看的接口（feed、快拍列表）用它来区分登录观众。
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// Admin 必须放在 Auth 之后
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, _ := c.Get("is_admin")
		if isAdmin, ok := admin.(bool); !ok || !isAdmin {
			response.Abort(c, http.StatusForbidden, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// AccessGrant 校验私密访问授权令牌（OTP 验证通过后签发的 grant token）
func AccessGrant(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseBearer(c, secret, jwt.TypeAccessGrant); !ok {
			return
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte, tokenType string) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
		return nil, false
	}

	claims, err := jwt.ParseToken(secret, tokenType, parts[1])
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, err.Error())
		return nil, false
	}

	return claims, true
}
