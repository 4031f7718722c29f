// Package response 提供统一的 HTTP 响应辅助函数
// 成功响应直接返回各接口自己的 JSON 结构
// 错误响应统一为 {code, message} 格式，便于前端处理
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构
// code: 业务状态码
// message: 错误信息
type ErrorBody struct {
	Code    int    `json:"code"`    // 业务状态码
	Message string `json:"message"` // 错误信息
}

// 业务状态码定义
const (
	CodeValidationError      = 1000 // 请求参数错误
	CodeNotFound             = 1003 // 资源不存在
	CodeInternalError        = 1004 // 服务器内部错误
	CodeConversationNotFound = 1301 // 对话不存在
)

// OK 返回 200 成功响应
// 参数:
//   - c: Gin 上下文
//   - data: 响应数据，直接作为响应体序列化
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 返回错误响应（通用）
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - bizCode: 业务状态码
//   - message: 错误信息
func Error(c *gin.Context, httpCode, bizCode int, message string) {
	c.JSON(httpCode, ErrorBody{
		Code:    bizCode,
		Message: message,
	})
}

// ValidationError 返回 422 错误（请求参数校验失败）
func ValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorBody{
		Code:    CodeValidationError,
		Message: message,
	})
}

// NotFound 返回 404 错误（资源不存在）
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{
		Code:    CodeNotFound,
		Message: message,
	})
}

// ConversationNotFound 返回对话不存在错误
func ConversationNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorBody{
		Code:    CodeConversationNotFound,
		Message: "Conversation not found",
	})
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Code:    CodeInternalError,
		Message: message,
	})
}
