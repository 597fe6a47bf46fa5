package admin

import "github.com/pawhaven/internal/provider"

// Handler 后台管理接口处理器
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
