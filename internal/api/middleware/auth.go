package middleware

import (
	"errors"
	"net/http"
	"strings"

	"recipe-manager/internal/core/auth"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey 身份資訊在 gin context 的鍵
const identityKey = "identity"

// Auth 身份解析中間件
// 透過外部身份服務將 Bearer 憑證解析為使用者身份，放入 context 供後續處理器使用
func Auth(client *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		identity, err := client.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Unauthorized",
					"code":  common.ErrCodeUnauthorized,
				})
				return
			}
			common.LogError("身份解析失敗",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Auth service unavailable",
				"code":  common.ErrCodeServiceUnavailable,
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin 管理員限定中間件，需在 Auth 之後註冊
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if !identity.IsAdmin {
			common.LogWarn("拒絕非管理員訪問",
				zap.String("user_id", identity.UserID),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin privileges required",
				"code":  common.ErrCodeForbidden,
			})
			return
		}
		c.Next()
	}
}

// CurrentIdentity 取得當前請求的身份，未解析時視為匿名
func CurrentIdentity(c *gin.Context) common.Identity {
	if v, exists := c.Get(identityKey); exists {
		if identity, ok := v.(common.Identity); ok {
			return identity
		}
	}
	return common.AnonymousIdentity
}
