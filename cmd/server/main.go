// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echoal-server/internal/config"
	"echoal-server/internal/database"
	"echoal-server/internal/handler"
	"echoal-server/internal/middleware"
	"echoal-server/internal/repository"
	"echoal-server/internal/service"
	"echoal-server/pkg/logger"
)

// version 当前版本号，构建时可通过 -ldflags 覆盖
var version = "1.0.0"

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志器
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	// 初始化数据库
	db, err := database.Open(cfg.Database, cfg.Server.Debug)
	if err != nil {
		zapLogger.Fatal("Failed to open database", zap.Error(err))
	}

	// 自动迁移数据库表
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}
	zapLogger.Info("database ready")

	// 初始化 AI 响应器
	// 没有配置 API Key 时自动降级为内置模板响应
	responder, err := service.NewResponder(cfg.OpenAI, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init ai responder", zap.Error(err))
	}

	// 初始化 Repository 层
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// 初始化 Service 层
	settingsService := service.NewSettingsService(settingsRepo)
	conversationService := service.NewConversationService(conversationRepo, messageRepo)
	chatService := service.NewChatService(conversationRepo, messageRepo, settingsService, responder)

	// 初始化 Handler 层
	chatHandler := handler.NewChatHandler(chatService)
	conversationHandler := handler.NewConversationHandler(conversationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	debugHandler := handler.NewDebugHandler(conversationService)

	// 设置 Gin 模式
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoveryMiddleware(zapLogger)) // 恢复 panic
	router.Use(middleware.LoggerMiddleware(zapLogger))   // 请求日志
	router.Use(middleware.CORSMiddleware(
		middleware.DefaultCORSConfig().WithOrigins(cfg.Server.CORS))) // CORS

	// 注册路由
	registerRoutes(router, cfg, chatHandler, conversationHandler, settingsHandler, debugHandler)

	// 创建 HTTP 服务器
	// AI 调用最长 30 秒，写超时要留足余量
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		zapLogger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	// 创建关闭上下文，设置超时
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	cfg *config.Config,
	chatHandler *handler.ChatHandler,
	conversationHandler *handler.ConversationHandler,
	settingsHandler *handler.SettingsHandler,
	debugHandler *handler.DebugHandler,
) {
	// 服务信息
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ECHOAL Backend API is running!",
			"status":  "healthy",
			"version": version,
			"endpoints": gin.H{
				"chat":          "/api/chat/send",
				"conversations": "/api/conversations",
				"settings":      "/api/settings",
				"health":        "/health",
			},
		})
	})

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// 聊天相关
	chat := api.Group("/chat")
	{
		chat.POST("/send", chatHandler.SendMessage)
	}

	// 对话相关
	conversations := api.Group("/conversations")
	{
		conversations.GET("", conversationHandler.ListConversations)
		conversations.GET("/:id/messages", conversationHandler.ListMessages)
		conversations.PUT("/:id/title", conversationHandler.RenameConversation)
		conversations.DELETE("/:id", conversationHandler.DeleteConversation)
	}

	// 设置相关
	settings := api.Group("/settings")
	{
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", settingsHandler.UpdateSettings)
		settings.POST("/reset", settingsHandler.ResetSettings)
		settings.GET("/themes", settingsHandler.GetThemes)
		settings.GET("/languages", settingsHandler.GetLanguages)
		settings.GET("/ai-models", settingsHandler.GetAIModels)
	}

	// 调试接口，仅调试模式开放
	if cfg.Server.Debug {
		router.GET("/debug/conversations", debugHandler.DumpConversations)
	}
}
