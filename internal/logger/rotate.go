package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDir        = "logs"
	defaultLogFilename   = "storefront.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// filePath 日志文件完整路径；目录为空时使用 <工作目录>/logs
func (o Options) filePath() (string, error) {
	dir := strings.TrimSpace(o.Dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir: %w", err)
		}
		dir = filepath.Join(wd, defaultLogDir)
	}
	name := strings.TrimSpace(o.Filename)
	if name == "" {
		name = defaultLogFilename
	}
	return filepath.Join(dir, name), nil
}

// rotatingFile 按大小滚动的日志文件；提前创建并试写，尽早暴露权限问题
func (o Options) rotatingFile() (*lumberjack.Logger, error) {
	path, err := o.filePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	probe, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	_ = probe.Close()

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(o.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: positiveOr(o.MaxBackups, defaultLogMaxBackups),
		MaxAge:     positiveOr(o.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   o.Compress,
	}, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
