// Package repository 提供数据访问层的实现
// 封装所有与数据库的交互操作
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"echoal-server/internal/model"
)

// ConversationRepository 对话数据访问层
// 负责对话相关的所有数据库操作
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建 ConversationRepository 实例
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create 创建新对话
// 参数:
//   - ctx: 上下文
//   - conversation: 对话对象，ID 和时间字段会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *ConversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

// GetByID 根据 ID 获取对话
// 参数:
//   - ctx: 上下文
//   - id: 对话ID
//
// 返回:
//   - *model.Conversation: 对话对象，未找到返回 nil
//   - error: 数据库错误
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// GetAll 获取所有对话
// 按最后活跃时间倒序排列，最近聊过的排在最前面
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - []model.Conversation: 对话列表
//   - error: 数据库错误
func (r *ConversationRepository) GetAll(ctx context.Context) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// UpdateTitle 更新对话标题
// 同时刷新最后活跃时间
// 参数:
//   - ctx: 上下文
//   - id: 对话ID
//   - title: 新标题
//
// 返回:
//   - error: 数据库错误
func (r *ConversationRepository) UpdateTitle(ctx context.Context, id, title string) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": time.Now(),
		}).Error
}

// Touch 刷新对话的最后活跃时间
// 每次向对话追加消息后调用，保证列表排序正确
// 参数:
//   - ctx: 上下文
//   - id: 对话ID
//
// 返回:
//   - error: 数据库错误
func (r *ConversationRepository) Touch(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"updated_at": time.Now(),
		}).Error
}

// Delete 删除对话及其所有消息
// 在事务中先删消息再删对话，即使数据库没有开启外键级联也能保证一致性
// 参数:
//   - ctx: 上下文
//   - id: 对话ID
//
// 返回:
//   - error: 数据库错误
func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Conversation{}, "id = ?", id).Error
	})
}

// Count 统计对话总数
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - int64: 对话数量
//   - error: 数据库错误
func (r *ConversationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).Count(&count).Error
	return count, err
}
