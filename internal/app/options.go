package app

import (
	"os"
	"strings"
	"time"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同时运行 API 与订单下发 worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// ValidMode 是否为已知启动模式
func ValidMode(mode string) bool {
	return mode == ModeAll || mode == ModeAPI || mode == ModeWorker
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 && opts.Config != nil {
		opts.ShutdownTimeout = opts.Config.Server.ShutdownTimeout()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode)); opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
