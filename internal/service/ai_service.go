package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"echoal-server/internal/config"
	"echoal-server/internal/model"
	"echoal-server/pkg/util"
)

const (
	// systemPrompt 注入给模型的系统提示词
	systemPrompt = "You are ECHOAL, a helpful AI assistant. Be friendly, informative, and engaging in your responses. Keep responses concise but helpful."

	// fallbackReply 模型调用失败时的兜底回复
	fallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

	// titleMaxLen 对话标题的最大长度
	titleMaxLen = 50
)

// Responder 生成 AI 响应的策略接口
// 实现必须保证 Respond 和 Title 永远返回非空的可用文本：
// 内部吞掉所有外部服务错误并降级到兜底内容，
// 聊天主流程不会因为 AI 服务不可用而失败
type Responder interface {
	// Respond 根据最近的对话历史和用户消息生成回复
	// settings 携带生成参数（模型、温度、token 上限）
	Respond(ctx context.Context, history []model.Message, content string, settings *model.Settings) string

	// Title 为新对话生成一个简短标题
	Title(ctx context.Context, firstMessage string) string
}

// NewResponder 根据配置选择响应器实现
// 配置了 API Key 时走 OpenAI，否则使用内置模板，应用在两种模式下都能启动
func NewResponder(cfg config.OpenAIConfig, logger *zap.Logger) (Responder, error) {
	if cfg.APIKey == "" {
		logger.Info("openai api key not set, using template responder")
		return NewTemplateResponder(), nil
	}
	logger.Info("using openai responder", zap.String("model", cfg.Model))
	return NewOpenAIResponder(cfg, logger)
}

// excerptTitle 从首条消息截取对话标题
// 消息为空白时返回默认标题
func excerptTitle(firstMessage string) string {
	title := strings.TrimSpace(firstMessage)
	if title == "" {
		return model.DefaultConversationTitle
	}
	return util.TruncateString(title, titleMaxLen)
}
