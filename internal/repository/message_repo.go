// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"echoal-server/internal/model"
)

// MessageRepository 消息数据访问层
// 负责消息相关的所有数据库操作
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 会被自动填充；CreatedAt 非零时按原值落库
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByConversationID 获取对话的所有消息
// 按创建时间正序排列（最早的在前），时间相同时按 ID 保证顺序稳定
// 参数:
//   - ctx: 上下文
//   - conversationID: 对话ID
//
// 返回:
//   - []model.Message: 消息列表
//   - error: 数据库错误
func (r *MessageRepository) GetByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// GetLatestByConversationID 获取对话的最新 N 条消息
// 用于为 AI 响应组装最近的对话上下文
// 参数:
//   - ctx: 上下文
//   - conversationID: 对话ID
//   - limit: 要获取的消息数量
//
// 返回:
//   - []model.Message: 消息列表（按时间正序）
//   - error: 数据库错误
func (r *MessageRepository) GetLatestByConversationID(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	var messages []model.Message

	// 子查询：先按时间倒序取最新的 N 条
	// 然后外层查询再按时间正序排列
	// 这样可以得到最新的 N 条消息，且顺序正确
	subQuery := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	err := r.db.WithContext(ctx).
		Table("(?) as t", subQuery).
		Order("created_at ASC, id ASC").
		Find(&messages).Error

	return messages, err
}

// CountByConversationID 统计对话的消息数量
// 参数:
//   - ctx: 上下文
//   - conversationID: 对话ID
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	return count, err
}

// Count 统计全部消息数量
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error
	return count, err
}

// DeleteByConversationID 删除对话的所有消息
// 通常在删除对话时使用（如果没有设置级联删除）
// 参数:
//   - ctx: 上下文
//   - conversationID: 对话ID
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) DeleteByConversationID(ctx context.Context, conversationID string) error {
	return r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&model.Message{}).Error
}
