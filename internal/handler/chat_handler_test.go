package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoal-server/pkg/response"
)

func TestSendMessage_CreatesConversation(t *testing.T) {
	router := newTestRouter(t)

	resp := sendMessage(t, router, "Hello there", "")

	conversationID, _ := resp["conversation_id"].(string)
	assert.Len(t, conversationID, 36)

	message, ok := resp["message"].(map[string]interface{})
	require.True(t, ok, "response must include the assistant message")
	assert.Equal(t, "assistant", message["role"])
	assert.NotEmpty(t, message["content"])
	assert.Equal(t, conversationID, message["conversation_id"])
	// 消息时间在 JSON 里叫 timestamp
	assert.Contains(t, message, "timestamp")
}

func TestSendMessage_AppendsToExisting(t *testing.T) {
	router := newTestRouter(t)

	first := sendMessage(t, router, "First message", "")
	conversationID := first["conversation_id"].(string)

	second := sendMessage(t, router, "Second message", conversationID)
	assert.Equal(t, conversationID, second["conversation_id"])

	w := doRequest(t, router, http.MethodGet, "/api/conversations/"+conversationID+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var messages []map[string]interface{}
	decodeBody(t, w, &messages)
	assert.Len(t, messages, 4)
}

func TestSendMessage_MissingContent(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/chat/send", map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body response.ErrorBody
	decodeBody(t, w, &body)
	assert.Equal(t, response.CodeValidationError, body.Code)
	assert.Equal(t, "content is required", body.Message)
}

func TestSendMessage_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	w := doRawRequest(t, router, http.MethodPost, "/api/chat/send", "{not json")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSendMessage_ConversationNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/chat/send", map[string]interface{}{
		"content":         "hello",
		"conversation_id": "no-such-id",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body response.ErrorBody
	decodeBody(t, w, &body)
	assert.Equal(t, response.CodeConversationNotFound, body.Code)
	assert.Equal(t, "Conversation not found", body.Message)
}
