// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"echoal-server/internal/service"
	"echoal-server/pkg/response"
)

// ChatHandler 聊天请求处理器
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// SendMessage 发送消息并获取 AI 回复
// @Summary 发送消息
// @Description 向指定对话发送消息并返回 AI 回复，未指定对话时自动创建新对话
// @Tags 聊天
// @Accept json
// @Produce json
// @Param body body service.SendMessageRequest true "消息内容"
// @Success 200 {object} service.SendMessageResponse
// @Failure 404 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /api/chat/send [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "content is required")
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrConversationNotFound:
			response.ConversationNotFound(c)
		default:
			response.InternalError(c, "Failed to process message")
		}
		return
	}

	response.OK(c, result)
}
