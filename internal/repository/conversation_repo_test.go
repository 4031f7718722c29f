package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"echoal-server/internal/config"
	"echoal-server/internal/database"
	"echoal-server/internal/model"
)

// newTestDB 创建基于临时文件的测试数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		URL: filepath.Join(t.TempDir(), "test.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// backdate 把对话的最后活跃时间改到过去，方便断言时间被刷新
func backdate(t *testing.T, db *gorm.DB, id string, at time.Time) {
	t.Helper()
	err := db.Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
	require.NoError(t, err)
}

func TestConversationRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &model.Conversation{Title: "First chat"}
	require.NoError(t, repo.Create(ctx, conversation))

	assert.Len(t, conversation.ID, 36)
	assert.False(t, conversation.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, conversation.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "First chat", got.Title)
}

func TestConversationRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)

	got, err := repo.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConversationRepository_GetAll_OrderedByActivity(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	older := &model.Conversation{Title: "older"}
	newer := &model.Conversation{Title: "newer"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	backdate(t, db, older.ID, time.Now().UTC().Add(-time.Hour))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Title)
	assert.Equal(t, "older", all[1].Title)

	// 刷新活跃时间后排到最前
	require.NoError(t, repo.Touch(ctx, older.ID))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "older", all[0].Title)
}

func TestConversationRepository_UpdateTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &model.Conversation{Title: "before"}
	require.NoError(t, repo.Create(ctx, conversation))
	old := time.Now().UTC().Add(-time.Hour)
	backdate(t, db, conversation.ID, old)

	require.NoError(t, repo.UpdateTitle(ctx, conversation.ID, "after"))

	got, err := repo.GetByID(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.UpdatedAt.After(old), "updated_at should be refreshed")
}

func TestConversationRepository_Touch(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &model.Conversation{Title: "chat"}
	require.NoError(t, repo.Create(ctx, conversation))
	old := time.Now().UTC().Add(-time.Hour)
	backdate(t, db, conversation.ID, old)

	require.NoError(t, repo.Touch(ctx, conversation.ID))

	got, err := repo.GetByID(ctx, conversation.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(old))
}

func TestConversationRepository_Delete_RemovesMessages(t *testing.T) {
	db := newTestDB(t)
	conversationRepo := NewConversationRepository(db)
	messageRepo := NewMessageRepository(db)
	ctx := context.Background()

	conversation := &model.Conversation{Title: "doomed"}
	require.NoError(t, conversationRepo.Create(ctx, conversation))
	for _, content := range []string{"hello", "hi there"} {
		require.NoError(t, messageRepo.Create(ctx, &model.Message{
			ConversationID: conversation.ID,
			Role:           model.MessageRoleUser,
			Content:        content,
		}))
	}

	require.NoError(t, conversationRepo.Delete(ctx, conversation.ID))

	got, err := conversationRepo.GetByID(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := messageRepo.CountByConversationID(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConversationRepository_Count(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(ctx, &model.Conversation{Title: "a"}))
	require.NoError(t, repo.Create(ctx, &model.Conversation{Title: "b"}))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
