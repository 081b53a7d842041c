package app

import (
	"errors"
	"fmt"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/provider"
	"github.com/webild-pos/internal/router"
	"github.com/webild-pos/internal/worker"
)

// BuildRunner 按启动模式组装服务：api 提供 HTTP，worker 消费订单下发任务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	container := provider.NewContainer(cfg)
	runner := NewRunner()

	if mode != ModeWorker {
		runner.Add(NewHTTPService(cfg.Server, router.SetupRouter(cfg, container)))
	}

	// all 模式下队列未启用时订单同步发送，不启动 worker
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		runner.Add(workerService)
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped_queue_disabled")
	}

	runner.OnStop(container.QueueClient.Close)
	runner.OnStop(cache.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config.Server),
		"mode", opts.Mode,
		"messaging_provider", opts.Config.Messaging.NormalizedProvider(),
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}
