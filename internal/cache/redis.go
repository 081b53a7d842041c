package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/webild-pos/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "wb"

// 进程级 Redis 客户端；未启用时所有读写退化为空操作
var (
	mu     sync.RWMutex
	client *redis.Client
	prefix = defaultPrefix
)

// InitRedis 连接并探活；不可达时返回错误且保持禁用，调用方退回内存实现
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		UseClient(nil, "")
		return nil
	}
	addr := redisAddr(cfg.Host, cfg.Port)
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		UseClient(nil, "")
		return fmt.Errorf("redis %s unreachable: %w", addr, err)
	}
	UseClient(c, cfg.Prefix)
	return nil
}

func redisAddr(host string, port int) string {
	if host = strings.TrimSpace(host); host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// UseClient 注入客户端（测试或复用连接），nil 表示禁用
func UseClient(c *redis.Client, keyPrefix string) {
	mu.Lock()
	defer mu.Unlock()
	client = c
	prefix = strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
}

// Enabled 是否有可用的 Redis
func Enabled() bool {
	return Client() != nil
}

// Client 当前客户端，未启用时为 nil
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Ping 健康检查；未启用视为正常
func Ping(ctx context.Context) error {
	c := Client()
	if c == nil {
		return nil
	}
	return c.Ping(ctx).Err()
}

// Close 关闭并禁用客户端
func Close() error {
	mu.Lock()
	c := client
	client = nil
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}

// Key 加上全局前缀，如 wb:catalog:tito
func Key(key string) string {
	mu.RLock()
	p := prefix
	mu.RUnlock()
	if key = strings.TrimSpace(key); key == "" {
		return p
	}
	return p + ":" + key
}

func getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	c := Client()
	if c == nil {
		return false, nil
	}
	raw, err := c.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c := Client()
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, Key(key), payload, ttl).Err()
}

func del(ctx context.Context, key string) error {
	c := Client()
	if c == nil {
		return nil
	}
	return c.Del(ctx, Key(key)).Err()
}
