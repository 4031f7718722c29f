package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpConversations(t *testing.T) {
	router := newTestRouter(t)
	resp := sendMessage(t, router, "debug me", "")
	conversationID := resp["conversation_id"].(string)

	w := doRequest(t, router, http.MethodGet, "/debug/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dump map[string]interface{}
	decodeBody(t, w, &dump)
	assert.EqualValues(t, 1, dump["total_conversations"])
	assert.EqualValues(t, 2, dump["total_messages"])

	conversations, ok := dump["conversations"].([]interface{})
	require.True(t, ok)
	assert.Len(t, conversations, 1)

	messages, ok := dump["messages"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, messages, conversationID)
}

func TestDumpConversations_Empty(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/debug/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dump map[string]interface{}
	decodeBody(t, w, &dump)
	assert.EqualValues(t, 0, dump["total_conversations"])
	assert.EqualValues(t, 0, dump["total_messages"])
}
