package service

import (
	"context"
	"time"

	"echoal-server/internal/model"
	"echoal-server/internal/repository"
)

// historyLimit 生成回复时携带的历史消息条数上限
// 控制提示词长度，避免长对话把上下文窗口撑爆
const historyLimit = 10

// ChatService 聊天服务
// 串联对话存储、设置和 AI 响应器，处理一轮完整的问答
type ChatService struct {
	conversationRepo *repository.ConversationRepository // 对话数据访问层
	messageRepo      *repository.MessageRepository      // 消息数据访问层
	settingsService  *SettingsService                   // 设置服务，提供生成参数
	responder        Responder                          // AI 响应器
}

// NewChatService 创建 ChatService 实例
func NewChatService(
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	settingsService *SettingsService,
	responder Responder,
) *ChatService {
	return &ChatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		settingsService:  settingsService,
		responder:        responder,
	}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content        string  `json:"content" binding:"required"` // 用户消息内容
	ConversationID *string `json:"conversation_id"`            // 目标对话，为空时创建新对话
}

// SendMessageResponse 发送消息响应
type SendMessageResponse struct {
	Message        *model.Message `json:"message"`         // AI 助手的回复消息
	ConversationID string         `json:"conversation_id"` // 消息所在的对话
}

// SendMessage 处理一轮问答
// 1. 定位目标对话，未指定时创建新对话并生成标题
// 2. 读取最近的历史消息作为上下文
// 3. 写入用户消息
// 4. 生成 AI 回复并写入
// 5. 刷新对话的最后活跃时间
func (s *ChatService) SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResponse, error) {
	conversation, err := s.resolveConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	// 历史上下文必须在写入本条消息之前读取
	history, err := s.messageRepo.GetLatestByConversationID(ctx, conversation.ID, historyLimit)
	if err != nil {
		return nil, err
	}

	userMessage := &model.Message{
		ConversationID: conversation.ID,
		Role:           model.MessageRoleUser,
		Content:        req.Content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, userMessage); err != nil {
		return nil, err
	}

	reply := s.responder.Respond(ctx, history, req.Content, settings)

	// 助手消息的时间戳严格晚于用户消息
	// 数据库的时间精度有限，同一毫秒落库会破坏排序
	assistantAt := time.Now().UTC()
	if !assistantAt.After(userMessage.CreatedAt) {
		assistantAt = userMessage.CreatedAt.Add(time.Millisecond)
	}
	assistantMessage := &model.Message{
		ConversationID: conversation.ID,
		Role:           model.MessageRoleAssistant,
		Content:        reply,
		CreatedAt:      assistantAt,
	}
	if err := s.messageRepo.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := s.conversationRepo.Touch(ctx, conversation.ID); err != nil {
		return nil, err
	}

	return &SendMessageResponse{
		Message:        assistantMessage,
		ConversationID: conversation.ID,
	}, nil
}

// resolveConversation 定位消息要写入的对话
// 指定了 conversation_id 但对话不存在时直接报错，不会落任何数据
func (s *ChatService) resolveConversation(ctx context.Context, req *SendMessageRequest) (*model.Conversation, error) {
	if req.ConversationID != nil && *req.ConversationID != "" {
		conversation, err := s.conversationRepo.GetByID(ctx, *req.ConversationID)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, ErrConversationNotFound
		}
		return conversation, nil
	}

	conversation := &model.Conversation{
		Title: s.responder.Title(ctx, req.Content),
	}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}
