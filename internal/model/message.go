// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"

	"gorm.io/gorm"

	"echoal-server/pkg/util"
)

// MessageRole 消息角色常量
const (
	MessageRoleUser      = "user"      // 用户消息
	MessageRoleAssistant = "assistant" // AI 助手响应
)

// Message 消息模型
// 对应数据库表 messages
// 存储对话中的每一条消息，用户消息和助手响应各占一行
type Message struct {
	// ID 消息唯一标识，UUID 字符串主键
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	// ConversationID 所属对话ID，外键关联 conversations.id
	ConversationID string `gorm:"type:char(36);index;not null" json:"conversation_id"`

	// Role 消息角色
	// user: 用户发送的消息
	// assistant: AI 助手的响应
	Role string `gorm:"size:20;not null" json:"role"`

	// Content 消息内容
	// 使用 TEXT 类型存储，可以存储较长的内容
	Content string `gorm:"type:text;not null" json:"content"`

	// CreatedAt 消息创建时间
	// JSON 字段名为 timestamp，与前端的字段约定保持一致
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	// Conversation 所属对话（多对一关系）
	Conversation *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
}

// BeforeCreate 在插入前生成 UUID 主键
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = util.GenerateUUID()
	}
	return nil
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
