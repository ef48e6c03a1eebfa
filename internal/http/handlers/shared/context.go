package shared

import (
	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 读取鉴权中间件写入的用户 ID，缺失时返回 401
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		RespondError(c, response.CodeInternal, "error.user_id_type_invalid", nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.user_id_invalid", nil)
		return 0, false
	}
	return id, true
}

// OptionalUserID 匿名请求返回 0
func OptionalUserID(c *gin.Context) uint {
	if id, ok := c.Get("user_id"); ok {
		if v, ok := id.(uint); ok {
			return v
		}
	}
	return 0
}
