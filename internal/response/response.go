// Package response renders the three JSON envelopes every endpoint returns.
package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"

	// DefaultSuccessMessage 未指定消息时使用
	DefaultSuccessMessage = "Success"
	// DefaultErrorMessage 未指定消息时使用
	DefaultErrorMessage = "Internal server error"
)

// ID 是 64 位整数标识，JSON 中总是编码为十进制字符串，避免 JS 客户端精度丢失。
type ID int64

// MarshalJSON 输出带引号的十进制字符串
func (id ID) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 22)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, int64(id), 10)
	buf = append(buf, '"')
	return buf, nil
}

// String returns the decimal form.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// SuccessEnvelope 2xx 响应
type SuccessEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// FailEnvelope 4xx 响应，errors 为字段到消息的映射
type FailEnvelope struct {
	Status string            `json:"status"`
	Errors map[string]string `json:"errors"`
}

// ErrorEnvelope 5xx 响应
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success 写出成功响应，message 为空时使用 "Success"。
func Success(c *gin.Context, status int, data any, message string) {
	if message == "" {
		message = DefaultSuccessMessage
	}
	c.JSON(status, SuccessEnvelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail 写出客户端错误响应并中止后续 handler。
func Fail(c *gin.Context, status int, errors map[string]string) {
	if errors == nil {
		errors = map[string]string{}
	}
	c.AbortWithStatusJSON(status, FailEnvelope{Status: StatusFail, Errors: errors})
}

// Error 写出服务端错误响应并中止后续 handler。
func Error(c *gin.Context, status int, message string) {
	if message == "" {
		message = DefaultErrorMessage
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Status: StatusError, Message: message})
}
