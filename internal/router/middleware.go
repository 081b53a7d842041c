package router

import (
	"strings"
	"time"

	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/constants"
	handlershared "github.com/webild-pos/internal/http/handlers/shared"
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/i18n"
	"github.com/webild-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
)

// RequestIDMiddleware 沿用上游传入的请求 ID，缺失或不合法时生成新的；
// 请求 ID 同时挂到请求级日志上
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := sanitizeRequestID(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(requestIDHeader, requestID)
		ctx := logger.WithContext(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// sanitizeRequestID 只接受可打印 ASCII，超长截断
func sanitizeRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxRequestIDLength {
		raw = raw[:maxRequestIDLength]
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < 0x21 || raw[i] > 0x7e {
			return ""
		}
	}
	return raw
}

// LoggerMiddleware 每个请求一条访问日志；业务错误码写在 gin.Context.Errors 时升级为 error
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if slug := c.Param("slug"); slug != "" {
			fields = append(fields, "store", slug)
		}
		if len(c.Errors) > 0 {
			sugar.Errorw("request", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("request", fields...)
	}
}

// RecoveryMiddleware panic 转为 500 信封响应，并带 request_id 记录
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Errorw("request_panic",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal"))
		c.Abort()
	})
}

// OwnerJWTAuthMiddleware 店主令牌鉴权
// 令牌由外部认证平台以 HS256 签发，sub 为店主ID；配置了 issuer 时同时校验签发方
func OwnerJWTAuthMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	secret := []byte(strings.TrimSpace(cfg.JWTSecret))
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)
	keyFunc := func(*jwt.Token) (interface{}, error) { return secret, nil }

	return func(c *gin.Context) {
		if len(secret) == 0 {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		raw, key := bearerToken(c.GetHeader("Authorization"))
		if key != "" {
			abortUnauthorized(c, key)
			return
		}

		var claims jwt.RegisteredClaims
		if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
			logger.FromContext(c.Request.Context()).Debugw("owner_token_rejected", "error", err)
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		ownerID := strings.TrimSpace(claims.Subject)
		if ownerID == "" {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		c.Set(handlershared.OwnerIDKey, ownerID)
		c.Next()
	}
}

// bearerToken 拆出 Bearer 令牌；失败时第二个返回值为错误文案 key
func bearerToken(header string) (string, string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "error.auth_header_missing"
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "error.auth_header_invalid"
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}
