package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"echoal-server/internal/config"
	"echoal-server/internal/database"
	"echoal-server/internal/repository"
	"echoal-server/internal/service"
)

// newTestRouter 装配一套完整的接口栈
// 数据库为临时 SQLite 文件，AI 响应器使用内置模板
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{
		URL: filepath.Join(t.TempDir(), "test.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db))
	conversationService := service.NewConversationService(conversationRepo, messageRepo)
	chatService := service.NewChatService(conversationRepo, messageRepo, settingsService, service.NewTemplateResponder())

	chatHandler := NewChatHandler(chatService)
	conversationHandler := NewConversationHandler(conversationService)
	settingsHandler := NewSettingsHandler(settingsService)
	debugHandler := NewDebugHandler(conversationService)

	router := gin.New()
	api := router.Group("/api")

	chat := api.Group("/chat")
	chat.POST("/send", chatHandler.SendMessage)

	conversations := api.Group("/conversations")
	conversations.GET("", conversationHandler.ListConversations)
	conversations.GET("/:id/messages", conversationHandler.ListMessages)
	conversations.PUT("/:id/title", conversationHandler.RenameConversation)
	conversations.DELETE("/:id", conversationHandler.DeleteConversation)

	settings := api.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)
	settings.POST("/reset", settingsHandler.ResetSettings)
	settings.GET("/themes", settingsHandler.GetThemes)
	settings.GET("/languages", settingsHandler.GetLanguages)
	settings.GET("/ai-models", settingsHandler.GetAIModels)

	router.GET("/debug/conversations", debugHandler.DumpConversations)

	return router
}

// doRequest 发起测试请求，body 非空时序列化为 JSON
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRawRequest 发起原始请求体的测试请求，用于构造非法 JSON
func doRawRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody 解析响应体
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// sendMessage 发送一条消息并返回响应体
func sendMessage(t *testing.T, router *gin.Engine, content string, conversationID string) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{"content": content}
	if conversationID != "" {
		body["conversation_id"] = conversationID
	}
	w := doRequest(t, router, http.MethodPost, "/api/chat/send", body)
	require.Equal(t, http.StatusOK, w.Code, "unexpected response: %s", w.Body.String())

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	return resp
}
