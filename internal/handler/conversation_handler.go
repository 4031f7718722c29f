// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"echoal-server/internal/service"
	"echoal-server/pkg/response"
)

// ConversationHandler 对话请求处理器
type ConversationHandler struct {
	conversationService *service.ConversationService
}

// NewConversationHandler 创建 ConversationHandler 实例
func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
	}
}

// ListConversations 获取对话列表
// @Summary 获取对话列表
// @Description 获取所有对话，按最后活跃时间倒序排列
// @Tags 对话
// @Produce json
// @Success 200 {array} service.ConversationResponse
// @Router /api/conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	conversations, err := h.conversationService.ListConversations(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to load conversations")
		return
	}

	response.OK(c, conversations)
}

// ListMessages 获取对话的消息列表
// @Summary 获取消息列表
// @Description 获取指定对话的全部消息，按时间正序排列
// @Tags 对话
// @Produce json
// @Param id path string true "对话ID"
// @Success 200 {array} model.Message
// @Failure 404 {object} response.ErrorBody
// @Router /api/conversations/{id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	conversationID := c.Param("id")

	messages, err := h.conversationService.ListMessages(c.Request.Context(), conversationID)
	if err != nil {
		switch err {
		case service.ErrConversationNotFound:
			response.ConversationNotFound(c)
		default:
			response.InternalError(c, "Failed to load messages")
		}
		return
	}

	response.OK(c, messages)
}

// RenameConversation 修改对话标题
// @Summary 修改对话标题
// @Description 更新指定对话的标题并返回更新后的对话
// @Tags 对话
// @Accept json
// @Produce json
// @Param id path string true "对话ID"
// @Param body body service.RenameConversationRequest true "新标题"
// @Success 200 {object} service.ConversationResponse
// @Failure 404 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /api/conversations/{id}/title [put]
func (h *ConversationHandler) RenameConversation(c *gin.Context) {
	conversationID := c.Param("id")

	var req service.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "title is required")
		return
	}

	conversation, err := h.conversationService.RenameConversation(c.Request.Context(), conversationID, &req)
	if err != nil {
		switch err {
		case service.ErrConversationNotFound:
			response.ConversationNotFound(c)
		default:
			response.InternalError(c, "Failed to rename conversation")
		}
		return
	}

	response.OK(c, conversation)
}

// DeleteConversation 删除对话
// @Summary 删除对话
// @Description 删除指定对话及其全部消息
// @Tags 对话
// @Produce json
// @Param id path string true "对话ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorBody
// @Router /api/conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	conversationID := c.Param("id")

	err := h.conversationService.DeleteConversation(c.Request.Context(), conversationID)
	if err != nil {
		switch err {
		case service.ErrConversationNotFound:
			response.ConversationNotFound(c)
		default:
			response.InternalError(c, "Failed to delete conversation")
		}
		return
	}

	response.OK(c, gin.H{
		"message": "Conversation deleted successfully",
	})
}
