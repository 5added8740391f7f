package user

import (
	"net/http"
	"strings"

	fbase "github.com/J33rry/Cozer-Backend/internal/platform/firebase"
	"github.com/gin-gonic/gin"
)

// IdentityKey 是Gin上下文中已验证身份的键名
const IdentityKey = "identity"

// bearerToken 从Authorization头中取出Bearer凭证
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// AuthMiddleware 校验请求的Bearer凭证，并把身份放入Gin上下文。
// 凭证缺失或无效时直接中断请求。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken := bearerToken(c)
		if idToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少身份凭证"})
			return
		}

		identity, err := fbase.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "身份凭证无效"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// identityFromContext 取出中间件放入的身份
func identityFromContext(c *gin.Context) *fbase.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*fbase.Identity)
	return identity
}
