package service

import (
	"context"
	"errors"
	"slices"

	"echoal-server/internal/model"
	"echoal-server/internal/repository"
)

// 设置服务相关错误
var (
	ErrInvalidTemperature = errors.New("temperature must be between 0.0 and 2.0")
	ErrInvalidMaxTokens   = errors.New("max_tokens must be between 1 and 4000")
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrUnknownLanguage    = errors.New("unknown language")
)

// 设置各字段的可选项目录
// 通过目录接口暴露给前端渲染下拉框
var (
	AvailableThemes    = []string{"light", "dark", "auto"}
	AvailableLanguages = []string{"en", "es", "fr", "de", "it", "pt", "ru", "zh", "ja", "ko"}
	AvailableAIModels  = []string{model.DefaultAIModel, "gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"}
)

// SettingsService 设置服务
// 管理全局唯一的设置记录
type SettingsService struct {
	settingsRepo *repository.SettingsRepository // 设置数据访问层
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsRequest 更新设置请求
// 全部字段可选，只更新请求中出现的字段
type UpdateSettingsRequest struct {
	Theme         *string  `json:"theme"`
	Language      *string  `json:"language"`
	AIModel       *string  `json:"ai_model"`
	Temperature   *float64 `json:"temperature"`
	MaxTokens     *int     `json:"max_tokens"`
	AutoSave      *bool    `json:"auto_save"`
	Notifications *bool    `json:"notifications"`
}

// GetSettings 获取当前设置
// 记录不存在时写入并返回出厂设置，调用方总能拿到可用的设置
func (s *SettingsService) GetSettings(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = model.DefaultSettings()
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		// 并发的首次访问可能同时插入，重查一次再放弃
		if existing, getErr := s.settingsRepo.Get(ctx); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings 部分更新设置
// 逐字段校验请求中出现的值，任何一个不合法都不会写库
// 返回更新后的完整设置
func (s *SettingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*model.Settings, error) {
	// 先保证记录存在，避免对空表做 UPDATE
	if _, err := s.GetSettings(ctx); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Theme != nil {
		if !slices.Contains(AvailableThemes, *req.Theme) {
			return nil, ErrUnknownTheme
		}
		updates["theme"] = *req.Theme
	}
	if req.Language != nil {
		if !slices.Contains(AvailableLanguages, *req.Language) {
			return nil, ErrUnknownLanguage
		}
		updates["language"] = *req.Language
	}
	if req.AIModel != nil {
		updates["ai_model"] = *req.AIModel
	}
	if req.Temperature != nil {
		if *req.Temperature < 0 || *req.Temperature > 2 {
			return nil, ErrInvalidTemperature
		}
		updates["temperature"] = *req.Temperature
	}
	if req.MaxTokens != nil {
		if *req.MaxTokens < 1 || *req.MaxTokens > 4000 {
			return nil, ErrInvalidMaxTokens
		}
		updates["max_tokens"] = *req.MaxTokens
	}
	if req.AutoSave != nil {
		updates["auto_save"] = *req.AutoSave
	}
	if req.Notifications != nil {
		updates["notifications"] = *req.Notifications
	}

	if len(updates) > 0 {
		if err := s.settingsRepo.UpdateFields(ctx, updates); err != nil {
			return nil, err
		}
	}

	return s.settingsRepo.Get(ctx)
}

// ResetSettings 恢复出厂设置
// 整行覆盖为默认值，保留原始创建时间
func (s *SettingsService) ResetSettings(ctx context.Context) (*model.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := model.DefaultSettings()
	settings.CreatedAt = current.CreatedAt
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
