// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echoal-server/pkg/response"
)

// LoggerMiddleware 创建请求日志中间件
// 记录每个请求的方法、路径、状态码和耗时
// 参数:
//   - logger: zap 日志器
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 记录请求开始时间
		start := time.Now()

		// 查询串一并记入路径
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		// 处理请求
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		// 根据状态码选择日志级别
		// 2xx/3xx 正常，4xx 客户端错误，5xx 服务端错误
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// RecoveryMiddleware 创建 panic 恢复中间件
// 捕获处理器中的 panic，记录堆栈并返回 500，防止程序崩溃
// 参数:
//   - logger: zap 日志器
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
					Code:    response.CodeInternalError,
					Message: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
