package handler

import (
	"crypto/subtle"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moodcheckin/internal/response"
	"github.com/sirupsen/logrus"
)

const (
	// APIKeyHeader 携带共享密钥的请求头
	APIKeyHeader = "x-api-key"
	// RequestIDHeader 请求 ID 的回写头
	RequestIDHeader = "X-Request-ID"

	unauthorizedMessage = "Unauthorized. Missing or invalid API Key."
	requestIDKey        = "request_id"
)

// APIKeyAuth 校验 x-api-key 是否与共享密钥一致，不一致时直接返回 401。
// 日志中不输出任何密钥内容。
func APIKeyAuth(secret string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" || !constantTimeEqual(provided, secret) {
			logger.WithFields(logrus.Fields{
				"request_id": requestID(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"remote_ip":  c.ClientIP(),
			}).Warn("api key rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
			return
		}
		c.Next()
	}
}

func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RequestID 为每个请求分配 ID，沿用客户端传入的值。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger 在请求结束后输出一条访问日志
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id":  requestID(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Recovery 捕获 panic，记录堆栈外的上下文并返回 error 包装。
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, response.DefaultErrorMessage)
	})
}

// NotFound 未匹配路由的统一响应
func NotFound(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, map[string]string{"route": "route not found"})
}
