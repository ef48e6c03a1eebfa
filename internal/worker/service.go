package worker

import (
	"context"
	"errors"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/queue"

	"github.com/hibiken/asynq"
)

const serviceName = "worker"

var (
	ErrQueueDisabled  = errors.New("queue disabled")
	ErrNilConsumer    = errors.New("consumer is nil")
	ErrNotInitialized = errors.New("worker not initialized")
)

// Service 把 asynq.Server 适配为 app.Service，由 Runner 控制启停
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建队列消费服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, ErrNilConsumer
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return serviceName
}

// Start 启动消费并阻塞到 ctx 结束；不用 asynq 的 Run，信号由 Runner 处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return ErrNotInitialized
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 先停止拉取新任务，再等待进行中的任务结束；ctx 超时则不再等待
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Stop()
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warnw("worker_shutdown_timeout", "error", ctx.Err())
		return ctx.Err()
	}
}
