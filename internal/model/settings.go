// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// SettingsID 设置记录的固定主键
// 整个应用只保留一行设置，所有读写都指向这一行
const SettingsID = 1

// DefaultAIModel 产品默认的模型别名
// 不是真实的提供方模型名，实际调用时会映射到配置的模型
const DefaultAIModel = "ECHOAL Assistant"

// Settings 应用设置模型
// 对应数据库表 settings
// 全局单行记录，保存界面偏好和 AI 生成参数
type Settings struct {
	// ID 固定为 SettingsID，不对外暴露
	ID uint `gorm:"primaryKey" json:"-"`

	// Theme 界面主题
	Theme string `gorm:"size:20;not null" json:"theme"`

	// Language 界面语言代码
	Language string `gorm:"size:10;not null" json:"language"`

	// AIModel 当前选择的 AI 模型名称
	AIModel string `gorm:"column:ai_model;size:100;not null" json:"ai_model"`

	// Temperature 生成温度，取值范围 0.0 到 2.0
	Temperature float64 `gorm:"not null" json:"temperature"`

	// MaxTokens 单次响应的最大 token 数
	MaxTokens int `gorm:"not null" json:"max_tokens"`

	// AutoSave 是否自动保存对话
	AutoSave bool `gorm:"not null" json:"auto_save"`

	// Notifications 是否开启通知
	Notifications bool `gorm:"not null" json:"notifications"`

	// CreatedAt 创建时间，不对外暴露
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`

	// UpdatedAt 更新时间，不对外暴露
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// DefaultSettings 返回出厂设置
// 首次访问设置或执行重置时写入数据库
func DefaultSettings() *Settings {
	return &Settings{
		ID:            SettingsID,
		Theme:         "light",
		Language:      "en",
		AIModel:       DefaultAIModel,
		Temperature:   0.7,
		MaxTokens:     500,
		AutoSave:      true,
		Notifications: true,
	}
}

// TableName 指定表名
func (Settings) TableName() string {
	return "settings"
}
