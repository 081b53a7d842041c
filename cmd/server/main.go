package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/webild-pos/internal/app"
	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"

	"github.com/gin-gonic/gin"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	printBanner(*mode, cfg)
	if err := run(*mode, cfg); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func run(mode string, cfg *config.Config) error {
	release := cfg.Server.Mode == "release"
	if err := checkAuthSecret(cfg.Auth.JWTSecret, release); err != nil {
		return err
	}
	if err := openDatabase(cfg.Database, cfg.Server.Mode == "debug"); err != nil {
		return err
	}
	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}

// checkAuthSecret release 模式下拒绝弱密钥，其余模式只告警
func checkAuthSecret(secret string, release bool) error {
	if !isWeakSecret(secret) {
		return nil
	}
	if release {
		return errors.New("auth.jwt_secret 过弱或仍为默认值，请配置与认证平台一致的强随机密钥")
	}
	logger.Warnw("auth_jwt_secret_weak", "hint", "生产环境请更换 auth.jwt_secret")
	return nil
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func openDatabase(cfg config.DatabaseConfig, verbose bool) error {
	if err := ensureSQLiteDir(cfg.Driver, cfg.DSN); err != nil {
		return fmt.Errorf("创建数据库目录失败: %w", err)
	}
	pool := models.DBPoolConfig{
		MaxOpenConns:           cfg.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Pool.ConnMaxIdleTimeSeconds,
	}
	if err := models.InitDB(cfg.Driver, cfg.DSN, pool, verbose); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// ensureSQLiteDir 文件型 SQLite 需要提前建好目录
func ensureSQLiteDir(driver, dsn string) error {
	if d := strings.ToLower(strings.TrimSpace(driver)); d != "" && d != "sqlite" {
		return nil
	}
	path := strings.TrimSpace(dsn)
	if path == "" || strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	path, _, _ = strings.Cut(path, "?")
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func printBanner(mode string, cfg *config.Config) {
	fmt.Printf("\033[36m\033[1mWebild POS\033[0m menu storefront (mode=%s, db=%s, port=%s)\n",
		mode, cfg.Database.Driver, cfg.Server.Port)
	fmt.Println("\033[2m  public: /api/v1/public/stores/:slug   admin: /api/v1/admin\033[0m")
}
