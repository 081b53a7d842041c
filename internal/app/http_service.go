package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"
)

// HTTPService 店铺前台与商户后台 API
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 按 server 配置创建 HTTP 服务；net/http 自身的错误写入 zap
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{server: &http.Server{
		Addr:              listenAddr(cfg),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          logger.StdLogger(),
	}}
}

func listenAddr(cfg config.ServerConfig) string {
	return net.JoinHostPort(cfg.Host, cfg.Port)
}

func (s *HTTPService) Name() string { return "http" }

// Start 阻塞监听，Stop 触发的关闭不算错误
func (s *HTTPService) Start(_ context.Context) error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 等待进行中的请求结束
func (s *HTTPService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
