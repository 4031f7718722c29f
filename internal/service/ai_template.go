package service

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"echoal-server/internal/model"
)

// 模板响应器的回复模板
// %s 占位符会被替换为从用户消息提取的话题
var (
	greetingReplies = []string{
		"Hello! I'm ECHOAL, your AI assistant. How can I help you today?",
		"Hi there! What can I do for you today?",
		"Hey! Great to hear from you. What would you like to talk about?",
	}

	thanksReplies = []string{
		"You're welcome! Is there anything else I can help you with?",
		"Happy to help! Let me know if you need anything else.",
		"Anytime! Feel free to ask if something else comes up.",
	}

	questionTemplates = []string{
		"Great question about %s! Here's my perspective...",
		"I'd be happy to help you with %s. Let me provide some insights.",
		"That's a thoughtful question. When it comes to %s, here's what I know...",
	}

	generalTemplates = []string{
		"I understand you're asking about %s. Let me help you with that.",
		"That's an interesting point about %s. Here's what I think...",
		"Thanks for sharing that with me. I'd be glad to help you with %s.",
		"I appreciate you asking about %s. Here's what I can tell you...",
		"When it comes to %s, there are a few things worth knowing.",
		"I'm here to help with %s. Let me share some thoughts.",
	}
)

// 消息分类用的关键词
var (
	greetingWords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "howdy"}
	questionWords = []string{"what", "how", "why", "when", "where", "who", "which", "can", "could", "would", "should", "is", "are", "do", "does"}
)

// TemplateResponder 内置模板响应器
// 没有配置外部 AI 服务时使用，回复从固定模板中随机挑选，
// 不依赖任何外部调用，永远可用
type TemplateResponder struct{}

// NewTemplateResponder 创建模板响应器
func NewTemplateResponder() *TemplateResponder {
	return &TemplateResponder{}
}

// Respond 按消息类型选择模板生成回复
// 分类顺序：问候、致谢、疑问、其他
func (t *TemplateResponder) Respond(ctx context.Context, history []model.Message, content string, settings *model.Settings) string {
	lower := strings.ToLower(strings.TrimSpace(content))

	switch {
	case isGreeting(lower):
		return pick(greetingReplies)
	case isThanks(lower):
		return pick(thanksReplies)
	case isQuestion(lower):
		return fmt.Sprintf(pick(questionTemplates), topicOf(lower))
	default:
		return fmt.Sprintf(pick(generalTemplates), topicOf(lower))
	}
}

// Title 直接从首条消息截取标题
func (t *TemplateResponder) Title(ctx context.Context, firstMessage string) string {
	return excerptTitle(firstMessage)
}

// isGreeting 判断消息是否为问候语
// 只匹配开头，避免把正文里偶然出现的问候词误判
func isGreeting(lower string) bool {
	for _, w := range greetingWords {
		if lower == w ||
			strings.HasPrefix(lower, w+" ") ||
			strings.HasPrefix(lower, w+",") ||
			strings.HasPrefix(lower, w+"!") {
			return true
		}
	}
	return false
}

// isThanks 判断消息是否在表达感谢
func isThanks(lower string) bool {
	return strings.Contains(lower, "thank") || strings.Contains(lower, "appreciate")
}

// isQuestion 判断消息是否为疑问句
func isQuestion(lower string) bool {
	if strings.HasSuffix(lower, "?") {
		return true
	}
	first, _, _ := strings.Cut(lower, " ")
	return slices.Contains(questionWords, first)
}

// topicOf 从消息提取话题，取前三个词
// 提取不到时使用通用占位话题
func topicOf(lower string) string {
	words := strings.Fields(lower)
	if len(words) == 0 {
		return "your question"
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}

// pick 从模板列表中随机取一条
func pick(templates []string) string {
	return templates[rand.Intn(len(templates))]
}
