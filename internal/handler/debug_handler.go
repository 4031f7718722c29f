// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"echoal-server/internal/model"
	"echoal-server/internal/service"
	"echoal-server/pkg/response"
)

// DebugHandler 调试接口处理器
// 只在调试模式下注册，直接导出数据库内容供排查问题
type DebugHandler struct {
	conversationService *service.ConversationService
}

// NewDebugHandler 创建 DebugHandler 实例
func NewDebugHandler(conversationService *service.ConversationService) *DebugHandler {
	return &DebugHandler{
		conversationService: conversationService,
	}
}

// DumpConversations 导出全部对话和消息
// @Summary 导出对话数据
// @Description 返回所有对话及其消息，仅用于调试
// @Tags 调试
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /debug/conversations [get]
func (h *DebugHandler) DumpConversations(c *gin.Context) {
	conversations, err := h.conversationService.ListConversations(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to load conversations")
		return
	}

	messages := make(map[string][]model.Message, len(conversations))
	totalMessages := 0
	for _, conversation := range conversations {
		msgs, err := h.conversationService.ListMessages(c.Request.Context(), conversation.ID)
		if err != nil {
			response.InternalError(c, "Failed to load messages")
			return
		}
		messages[conversation.ID] = msgs
		totalMessages += len(msgs)
	}

	response.OK(c, gin.H{
		"conversations":       conversations,
		"messages":            messages,
		"total_conversations": len(conversations),
		"total_messages":      totalMessages,
	})
}
