// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"time"

	"echoal-server/internal/model"
	"echoal-server/internal/repository"
)

// 对话服务相关错误
var (
	ErrConversationNotFound = errors.New("conversation not found")
)

// ConversationService 对话服务
// 处理对话的查询、改名和删除
type ConversationService struct {
	conversationRepo *repository.ConversationRepository // 对话数据访问层
	messageRepo      *repository.MessageRepository      // 消息数据访问层
}

// NewConversationService 创建 ConversationService 实例
func NewConversationService(
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// ConversationResponse 对话响应
type ConversationResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int64     `json:"message_count"` // 对话内的消息条数
}

// RenameConversationRequest 修改对话标题请求
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// ListConversations 获取所有对话
// 按最后活跃时间倒序排列，并附带每个对话的消息数量
func (s *ConversationService) ListConversations(ctx context.Context) ([]ConversationResponse, error) {
	conversations, err := s.conversationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ConversationResponse, len(conversations))
	for i := range conversations {
		resp, err := s.toConversationResponse(ctx, &conversations[i])
		if err != nil {
			return nil, err
		}
		result[i] = *resp
	}
	return result, nil
}

// ListMessages 获取对话的全部消息
// 按创建时间正序排列
// 对话不存在时返回 ErrConversationNotFound，空对话返回空列表
func (s *ConversationService) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := s.messageRepo.GetByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}

// RenameConversation 修改对话标题
// 返回更新后的对话
func (s *ConversationService) RenameConversation(ctx context.Context, conversationID string, req *RenameConversationRequest) (*ConversationResponse, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	if err := s.conversationRepo.UpdateTitle(ctx, conversationID, req.Title); err != nil {
		return nil, err
	}

	updated, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return s.toConversationResponse(ctx, updated)
}

// DeleteConversation 删除对话及其所有消息
// 对同一对话重复删除时，第二次返回 ErrConversationNotFound
func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID string) error {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}
	return s.conversationRepo.Delete(ctx, conversationID)
}

// toConversationResponse 将对话模型转换为响应格式
func (s *ConversationService) toConversationResponse(ctx context.Context, conversation *model.Conversation) (*ConversationResponse, error) {
	count, err := s.messageRepo.CountByConversationID(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}
	return &ConversationResponse{
		ID:           conversation.ID,
		Title:        conversation.Title,
		CreatedAt:    conversation.CreatedAt,
		UpdatedAt:    conversation.UpdatedAt,
		MessageCount: count,
	}, nil
}
