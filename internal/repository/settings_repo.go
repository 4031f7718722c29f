// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"echoal-server/internal/model"
)

// SettingsRepository 设置数据访问层
// 设置在数据库中只有一行记录，所有操作都针对固定主键 model.SettingsID
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 创建 SettingsRepository 实例
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get 获取设置记录
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - *model.Settings: 设置对象，记录不存在返回 nil
//   - error: 数据库错误
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", model.SettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Create 创建设置记录
// 仅在首次访问时调用一次
// 参数:
//   - ctx: 上下文
//   - settings: 设置对象，ID 必须为 model.SettingsID
//
// 返回:
//   - error: 数据库错误
func (r *SettingsRepository) Create(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// UpdateFields 按字段更新设置
// 只更新 fields 中出现的列，未提及的列保持原值
// 参数:
//   - ctx: 上下文
//   - fields: 要更新的字段，key 为数据库列名
//
// 返回:
//   - error: 数据库错误
func (r *SettingsRepository) UpdateFields(ctx context.Context, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Settings{}).
		Where("id = ?", model.SettingsID).
		Updates(fields).Error
}

// Save 整行覆盖设置记录
// 记录不存在时插入，存在时全量更新，用于恢复出厂设置
// 参数:
//   - ctx: 上下文
//   - settings: 设置对象
//
// 返回:
//   - error: 数据库错误
func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
