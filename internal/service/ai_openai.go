package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"echoal-server/internal/config"
	"echoal-server/internal/model"
	"echoal-server/pkg/util"
)

// providerTimeout 单次模型调用的超时时间
const providerTimeout = 30 * time.Second

// OpenAIResponder 基于 OpenAI 兼容接口的响应器
// 通过 langchaingo 调用，BaseURL 可指向任何兼容的接入点
type OpenAIResponder struct {
	llm          llms.Model
	defaultModel string
	logger       *zap.Logger
}

// NewOpenAIResponder 创建 OpenAI 响应器
// 参数:
//   - cfg: OpenAI 配置，APIKey 必须非空
//   - logger: 日志器
//
// 返回:
//   - *OpenAIResponder: 响应器实例
//   - error: 客户端构建失败
func NewOpenAIResponder(cfg config.OpenAIConfig, logger *zap.Logger) (*OpenAIResponder, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &OpenAIResponder{
		llm:          llm,
		defaultModel: cfg.Model,
		logger:       logger,
	}, nil
}

// Respond 调用模型生成回复
// 历史消息按原始角色转换为模型消息，最前面注入系统提示词
// 任何错误都会被记录并降级为兜底回复，返回值始终可用
func (r *OpenAIResponder) Respond(ctx context.Context, history []model.Message, content string, settings *model.Settings) string {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	for _, msg := range history {
		role := llms.ChatMessageTypeHuman
		if msg.Role == model.MessageRoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, content))

	resp, err := r.llm.GenerateContent(ctx, messages,
		llms.WithModel(r.resolveModel(settings)),
		llms.WithTemperature(settings.Temperature),
		llms.WithMaxTokens(settings.MaxTokens),
	)
	if err != nil {
		r.logger.Warn("openai request failed, falling back to canned reply", zap.Error(err))
		return fallbackReply
	}

	if len(resp.Choices) == 0 {
		r.logger.Warn("openai returned no choices")
		return fallbackReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Content)
	if reply == "" {
		r.logger.Warn("openai returned empty content")
		return fallbackReply
	}
	return reply
}

// Title 让模型为对话生成一个简短标题
// 生成失败或结果为空时退回消息截取
func (r *OpenAIResponder) Title(ctx context.Context, firstMessage string) string {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Generate a short, descriptive title (max %d characters) for a conversation that starts with this message: %q. Return only the title, no quotes or extra text.",
		titleMaxLen, firstMessage)

	title, err := llms.GenerateFromSinglePrompt(ctx, r.llm, prompt,
		llms.WithModel(r.defaultModel),
		llms.WithTemperature(0.5),
		llms.WithMaxTokens(20),
	)
	if err != nil {
		r.logger.Warn("openai title generation failed, falling back to excerpt", zap.Error(err))
		return excerptTitle(firstMessage)
	}

	title = strings.Trim(strings.TrimSpace(title), "\"'")
	if title == "" {
		return excerptTitle(firstMessage)
	}
	return util.TruncateString(title, titleMaxLen)
}

// resolveModel 把设置里的模型名映射为真实的提供方模型
// 产品默认别名不是真实模型，退回配置里的模型名
func (r *OpenAIResponder) resolveModel(settings *model.Settings) string {
	if settings == nil || settings.AIModel == "" || settings.AIModel == model.DefaultAIModel {
		return r.defaultModel
	}
	return settings.AIModel
}
