package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"echoal-server/internal/config"
	"echoal-server/internal/database"
	"echoal-server/internal/model"
	"echoal-server/internal/repository"
)

// testEnv 测试用的完整服务栈
// 数据库为每个测试独立的 SQLite 临时文件
type testEnv struct {
	db                  *gorm.DB
	conversationRepo    *repository.ConversationRepository
	messageRepo         *repository.MessageRepository
	settingsService     *SettingsService
	conversationService *ConversationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		URL: filepath.Join(t.TempDir(), "test.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	return &testEnv{
		db:                  db,
		conversationRepo:    conversationRepo,
		messageRepo:         messageRepo,
		settingsService:     NewSettingsService(repository.NewSettingsRepository(db)),
		conversationService: NewConversationService(conversationRepo, messageRepo),
	}
}

// newChatService 在测试环境上装配聊天服务
func (e *testEnv) newChatService(responder Responder) *ChatService {
	return NewChatService(e.conversationRepo, e.messageRepo, e.settingsService, responder)
}

// seedConversation 创建一个带 n 条交替消息的对话
// 消息按 1 秒间隔递增，内容为 m0..m(n-1)
func (e *testEnv) seedConversation(t *testing.T, title string, n int) *model.Conversation {
	t.Helper()
	ctx := context.Background()
	conversation := &model.Conversation{Title: title}
	require.NoError(t, e.conversationRepo.Create(ctx, conversation))

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < n; i++ {
		role := model.MessageRoleUser
		if i%2 == 1 {
			role = model.MessageRoleAssistant
		}
		require.NoError(t, e.messageRepo.Create(ctx, &model.Message{
			ConversationID: conversation.ID,
			Role:           role,
			Content:        messageContent(i),
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}))
	}
	return conversation
}

// backdate 把对话的最后活跃时间改到指定时刻
func (e *testEnv) backdate(t *testing.T, id string, at time.Time) {
	t.Helper()
	err := e.db.Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
	require.NoError(t, err)
}

func messageContent(i int) string {
	return fmt.Sprintf("m%d", i)
}

// recordingResponder 记录调用参数的测试响应器
type recordingResponder struct {
	history  []model.Message
	content  string
	settings *model.Settings
	reply    string
	title    string
}

func (r *recordingResponder) Respond(ctx context.Context, history []model.Message, content string, settings *model.Settings) string {
	r.history = history
	r.content = content
	r.settings = settings
	return r.reply
}

func (r *recordingResponder) Title(ctx context.Context, firstMessage string) string {
	return r.title
}
