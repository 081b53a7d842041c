package router

import (
	"context"
	"strings"

	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/i18n"
	"github.com/webild-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// KEYS[1] 计数键，ARGV[1] 窗口秒数；返回 {当前次数, 剩余秒数}
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// hit 计数一次，返回是否放行以及需要等待的秒数
func (r RateLimitRule) hit(ctx context.Context, client *redis.Client, key string) (bool, int, error) {
	if r.Prefix != "" {
		key = r.Prefix + ":" + key
	}
	values, err := fixedWindowScript.Run(ctx, client, []string{key}, r.WindowSeconds).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(values) < 2 || values[0] <= int64(r.MaxRequests) {
		return true, 0, nil
	}
	wait := int(values[1])
	if wait < 1 {
		wait = r.WindowSeconds
	}
	return false, wait, nil
}

// RateLimitMiddleware Redis 固定窗口限流；未配置 Redis 或规则为空时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		allowed, wait, err := rule.hit(c.Request.Context(), client, key)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warnw("rate_limit_script_failed", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if !allowed {
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait)
			response.ErrorWithData(c, response.CodeTooManyRequests, msg, gin.H{"retry_after": wait})
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByHeaderAndIP 按请求头（购物车会话）+ IP 限流，头缺失时退回 IP
func KeyByHeaderAndIP(header string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.TrimSpace(c.GetHeader(header))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}
