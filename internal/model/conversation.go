// Package model 定义了与数据库表对应的数据结构
// 这些结构体同时承担数据库映射和 JSON 序列化两个职责
package model

import (
	"time"

	"gorm.io/gorm"

	"echoal-server/pkg/util"
)

// DefaultConversationTitle 对话的默认标题
// 当无法从首条消息生成摘要标题时使用
const DefaultConversationTitle = "New Conversation"

// Conversation 对话模型
// 对应数据库表 conversations
// 表示用户与 AI 助手的一次完整对话，类似聊天应用中的会话窗口
type Conversation struct {
	// ID 对话唯一标识，UUID 字符串主键
	// 由 BeforeCreate 钩子在插入前自动生成
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	// Title 对话标题
	// 创建时由首条用户消息生成，之后可以通过接口修改
	Title string `gorm:"size:255;not null" json:"title"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 最后活跃时间
	// 每次追加消息或修改标题时刷新，对话列表按此字段倒序排列
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Messages 对话中的所有消息（一对多关系）
	// 删除对话时级联删除
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// BeforeCreate 在插入前生成 UUID 主键
// 已有 ID 时保持不变，方便测试构造固定数据
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = util.GenerateUUID()
	}
	return nil
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}
