// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"echoal-server/internal/service"
	"echoal-server/pkg/response"
)

// SettingsHandler 设置请求处理器
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler 实例
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings 获取当前设置
// @Summary 获取设置
// @Description 获取当前应用设置，首次访问时返回出厂设置
// @Tags 设置
// @Produce json
// @Success 200 {object} model.Settings
// @Router /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to load settings")
		return
	}

	response.OK(c, settings)
}

// UpdateSettings 更新设置
// @Summary 更新设置
// @Description 部分更新应用设置，只修改请求中出现的字段，返回更新后的完整设置
// @Tags 设置
// @Accept json
// @Produce json
// @Param body body service.UpdateSettingsRequest true "要更新的字段"
// @Success 200 {object} model.Settings
// @Failure 422 {object} response.ErrorBody
// @Router /api/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUnknownTheme,
			service.ErrUnknownLanguage,
			service.ErrInvalidTemperature,
			service.ErrInvalidMaxTokens:
			response.ValidationError(c, err.Error())
		default:
			response.InternalError(c, "Failed to update settings")
		}
		return
	}

	response.OK(c, settings)
}

// ResetSettings 恢复出厂设置
// @Summary 重置设置
// @Description 将全部设置恢复为出厂默认值
// @Tags 设置
// @Produce json
// @Success 200 {object} model.Settings
// @Router /api/settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	settings, err := h.settingsService.ResetSettings(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to reset settings")
		return
	}

	response.OK(c, settings)
}

// GetThemes 获取可选主题列表
// @Summary 获取主题目录
// @Tags 设置
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/settings/themes [get]
func (h *SettingsHandler) GetThemes(c *gin.Context) {
	response.OK(c, gin.H{
		"themes": service.AvailableThemes,
	})
}

// GetLanguages 获取可选语言列表
// @Summary 获取语言目录
// @Tags 设置
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/settings/languages [get]
func (h *SettingsHandler) GetLanguages(c *gin.Context) {
	response.OK(c, gin.H{
		"languages": service.AvailableLanguages,
	})
}

// GetAIModels 获取可选模型列表
// @Summary 获取模型目录
// @Tags 设置
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/settings/ai-models [get]
func (h *SettingsHandler) GetAIModels(c *gin.Context) {
	response.OK(c, gin.H{
		"models": service.AvailableAIModels,
	})
}
