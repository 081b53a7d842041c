package worker

import (
	"context"
	"errors"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 订单下发 worker，消费 Cloud API 发送任务
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 队列未启用时返回错误（worker 模式必须配置队列）
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	redisOpt, serverCfg := queue.BuildServerConfig(cfg)
	return &Service{server: asynq.NewServer(redisOpt, serverCfg), mux: mux}, nil
}

func (s *Service) Name() string { return "worker" }

// Start 启动消费并阻塞到 ctx 结束；信号由 Runner 统一处理
func (s *Service) Start(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务完成后退出
func (s *Service) Stop(_ context.Context) error {
	s.server.Shutdown()
	return nil
}
