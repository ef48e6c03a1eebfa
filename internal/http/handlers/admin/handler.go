package admin

import "github.com/foodgram-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于员工侧管理 API，访问由 RBAC 中间件控制。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
