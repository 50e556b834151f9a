package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/logger"
)

// 读超时需覆盖多图上传，写超时需覆盖一次 AI 生成
const (
	httpReadHeaderTimeout = 10 * time.Second
	httpReadTimeout       = 2 * time.Minute
	httpIdleTimeout       = 2 * time.Minute
	httpWriteSlack        = 30 * time.Second
	defaultAIWriteTimeout = 90 * time.Second
)

// HTTPService 目录 API 服务
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务，超时按配置推导
func NewHTTPService(cfg *config.Config, handler http.Handler) *HTTPService {
	addr := ":8080"
	aiTimeout := defaultAIWriteTimeout
	if cfg != nil {
		addr = net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
		if cfg.AI.TimeoutSeconds > 0 {
			aiTimeout = time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		}
	}
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
			ReadTimeout:       httpReadTimeout,
			WriteTimeout:      aiTimeout + httpWriteSlack,
			IdleTimeout:       httpIdleTimeout,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Start 监听直到 Stop 被调用
func (s *HTTPService) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	logger.Named("http").Infow("http_listen", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 优雅关闭，等待进行中的生成请求
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
