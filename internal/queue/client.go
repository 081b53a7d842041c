package queue

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/constants"
	"github.com/webild-pos/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 订单下发队列
	CriticalQueue = constants.QueueCritical
)

// Enqueuer 任务入队接口
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client 队列客户端封装
type Client struct {
	client  Enqueuer
	closer  func() error
	enabled bool
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false}, nil
	}
	client := asynq.NewClient(buildRedisOpt(cfg))
	return &Client{
		client:  client,
		closer:  client.Close,
		enabled: true,
	}, nil
}

// NewClientWithEnqueuer 使用自定义入队实现创建客户端
func NewClientWithEnqueuer(enqueuer Enqueuer) *Client {
	return &Client{client: enqueuer, enabled: enqueuer != nil}
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer()
}

// EnqueueOrderDispatch 推送订单消息下发任务，返回任务ID
func (c *Client) EnqueueOrderDispatch(payload OrderDispatchPayload, opts ...asynq.Option) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewOrderDispatchTask(payload)
	if err != nil {
		return "", err
	}
	options := append([]asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.MaxRetry(constants.OrderDispatchMaxRetry),
		asynq.Timeout(time.Duration(constants.OrderDispatchTimeoutSeconds) * time.Second),
	}, opts...)
	info, err := c.client.Enqueue(task, options...)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", nil
	}
	return info.ID, nil
}

// BuildServerConfig 生成 worker 配置，asynq 自身日志写入 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency:     10,
		Queues:          map[string]int{DefaultQueue: 1, CriticalQueue: 2},
		Logger:          logger.SW("component", "asynq"),
		ShutdownTimeout: time.Duration(constants.OrderDispatchTimeoutSeconds) * time.Second,
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return buildRedisOpt(cfg), serverCfg
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	if cfg == nil {
		return asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return asynq.RedisClientOpt{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
