package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPService HTTP 服务封装
type HTTPService struct {
	name   string
	server *http.Server
}

// HTTPServiceOption HTTP 服务可选项
type HTTPServiceOption func(*HTTPService)

// WithTracing 使用 otelhttp 包装处理器，为每个请求创建 span
func WithTracing(serviceName string) HTTPServiceOption {
	return func(s *HTTPService) {
		if serviceName == "" {
			serviceName = "pawhaven"
		}
		s.server.Handler = otelhttp.NewHandler(s.server.Handler, serviceName)
	}
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler, opts ...HTTPServiceOption) *HTTPService {
	s := &HTTPService{
		name: "http",
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "http"
	}
	return s.name
}

// Start 启动服务
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
