// Package config 负责加载和管理应用程序的配置
// 使用 viper 库支持 YAML 配置文件和环境变量覆盖
// 启动时还会尝试加载 .env 文件，方便本地开发
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 是应用程序的根配置结构
// 包含所有子配置模块
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	OpenAI   OpenAIConfig   `mapstructure:"openai"`   // OpenAI 服务配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器相关配置
type ServerConfig struct {
	Host  string   `mapstructure:"host"`  // 监听地址，默认 0.0.0.0
	Port  int      `mapstructure:"port"`  // 监听端口，默认 8000
	Debug bool     `mapstructure:"debug"` // 调试模式，开启时暴露调试接口
	CORS  []string `mapstructure:"cors"`  // CORS 允许的域名
}

// DatabaseConfig 数据库连接配置
// URL 同时支持 SQLite 文件路径和 MySQL 连接串
// 具体的方言识别在 database 包中完成
type DatabaseConfig struct {
	URL          string `mapstructure:"url"`            // 连接串或文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"` // 最大空闲连接数（仅 MySQL）
	MaxOpenConns int    `mapstructure:"max_open_conns"` // 最大打开连接数（仅 MySQL）
	MaxLifetime  int    `mapstructure:"max_lifetime"`   // 连接最大生命周期（秒，仅 MySQL）
}

// OpenAIConfig OpenAI 服务配置
// APIKey 为空时应用降级为内置模板响应，不影响启动
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`  // API Key，可为空
	Model   string `mapstructure:"model"`    // 模型名称
	BaseURL string `mapstructure:"base_url"` // 自定义接入点，可为空
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug/info/warn/error
	Format string `mapstructure:"format"` // 日志格式: json/console
}

// Load 从指定路径加载配置文件
// 支持环境变量覆盖配置项
// 参数:
//   - configPath: 配置文件目录路径 (如 "./configs")
//
// 返回:
//   - *Config: 配置对象
//   - error: 如果加载失败则返回错误
func Load(configPath string) (*Config, error) {
	// 尝试加载 .env 文件
	// 文件不存在时静默跳过，生产环境直接使用真实环境变量
	_ = godotenv.Load()

	// 创建新的 viper 实例
	v := viper.New()

	// 设置配置文件
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// 启用环境变量
	v.AutomaticEnv()
	// 将环境变量中的 _ 映射到配置的 .
	// 例如: LOG_LEVEL -> log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 绑定环境变量
	bindEnvVariables(v)

	// 设置默认值（当配置文件中未指定时使用）
	setDefaults(v)

	// 读取配置文件（如果不存在则使用默认值和环境变量）
	if err := v.ReadInConfig(); err != nil {
		// 如果配置文件不存在，继续使用默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 将配置解析到结构体
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindEnvVariables 绑定环境变量到配置项
func bindEnvVariables(v *viper.Viper) {
	// 服务器配置
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.debug", "DEBUG")
	v.BindEnv("server.cors", "ALLOWED_ORIGINS")

	// 数据库配置
	v.BindEnv("database.url", "DATABASE_URL")

	// OpenAI 配置
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")

	// 日志配置
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}

// setDefaults 设置配置项的默认值
// 当配置文件中没有指定某个值时，将使用这里设置的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debug", true)
	v.SetDefault("server.cors", []string{"http://localhost:3000", "http://localhost:5173"})

	// 数据库默认配置
	// 默认使用工作目录下的 SQLite 文件，开箱即用
	v.SetDefault("database.url", "echoal.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_lifetime", 3600)

	// OpenAI 默认配置
	v.SetDefault("openai.model", "gpt-3.5-turbo")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
