package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/foodgram-next/internal/config"
)

const httpReadHeaderTimeout = 10 * time.Second

// HTTPService gin 引擎的生命周期封装
type HTTPService struct {
	server   *http.Server
	listener net.Listener
}

// NewHTTPService 超时取自 server 配置，零值表示不限制
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

func (s *HTTPService) Name() string { return "http" }

// Listen 提前绑定端口，测试里可用 :0 拿到实际地址
func (s *HTTPService) Listen() (net.Addr, error) {
	if s.listener == nil {
		ln, err := net.Listen("tcp", s.server.Addr)
		if err != nil {
			return nil, err
		}
		s.listener = ln
	}
	return s.listener.Addr(), nil
}

func (s *HTTPService) Start(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	err := s.server.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 等待进行中的请求结束，超时后强制关闭连接
func (s *HTTPService) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		_ = s.server.Close()
		return err
	}
	return nil
}
