// Package logger 构建应用程序的结构化日志器
// 基于 uber 的 zap 库，支持 JSON 和控制台两种输出格式
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"echoal-server/internal/config"
)

// New 根据日志配置构建 zap 日志器
// 参数:
//   - cfg: 日志配置，level 控制最低输出级别，format 选择编码方式
//
// 返回:
//   - *zap.Logger: 日志器，调用方负责在退出前 Sync
//   - error: 级别无法识别或构建失败
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	// console 格式用于本地开发，其余一律按生产 JSON 输出
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
