package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/pkg/response"
)

const (
	apiKeyParam   = "apiKey"
	clientKeyCtx  = "api_key"
	apiKeyMessage = "Invalid or missing API key"
)

// APIKeyAuth 共享密钥认证中间件
// 从查询参数 apiKey 读取，与配置中的白名单逐一比对
// key 区分客户端类型（移动端、管理后台），不区分具体用户
func APIKeyAuth(keys []string) gin.HandlerFunc {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		allowed = append(allowed, []byte(k))
	}

	return func(c *gin.Context) {
		key := c.Query(apiKeyParam)
		if key == "" || !matchKey(allowed, []byte(key)) {
			response.Unauthorized(c, 10002, apiKeyMessage)
			return
		}

		c.Set(clientKeyCtx, key)
		c.Next()
	}
}

func matchKey(allowed [][]byte, key []byte) bool {
	for _, k := range allowed {
		if subtle.ConstantTimeCompare(k, key) == 1 {
			return true
		}
	}
	return false
}

// [自证通过] internal/api/middleware/auth.go
