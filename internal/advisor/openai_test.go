package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/model"
)

func newOpenAITestServer(t *testing.T, status int, content string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
			return
		}
		resp := map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4-turbo-preview",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestOpenAIClient(t *testing.T, serverURL string) *openAIClient {
	t.Helper()
	client, err := newOpenAIClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	oc := client.(*openAIClient)
	oc.baseURL = serverURL
	return oc
}

func TestOpenAIClient_RequiresAPIKey(t *testing.T) {
	_, err := newOpenAIClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestOpenAIClient_SuggestCategory(t *testing.T) {
	var captured map[string]any
	server := newOpenAITestServer(t, http.StatusOK, `{"category": "Groceries"}`, &captured)
	defer server.Close()

	client := newTestOpenAIClient(t, server.URL)
	category, err := client.SuggestCategory(context.Background(), "WHOLE FOODS")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, category)
	assert.Equal(t, "gpt-4-turbo-preview", captured["model"])
}

func TestOpenAIClient_SuggestCategoryRejectsBadJSON(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusOK, "definitely groceries", nil)
	defer server.Close()

	client := newTestOpenAIClient(t, server.URL)
	_, err := client.SuggestCategory(context.Background(), "WHOLE FOODS")
	require.Error(t, err)
}

func TestOpenAIClient_SurfacesAPIErrors(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusInternalServerError, "", nil)
	defer server.Close()

	client := newTestOpenAIClient(t, server.URL)
	_, err := client.GenerateInsights(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOpenAIClient_ChatSendsHistoryAndRecordsTurns(t *testing.T) {
	var captured map[string]any
	server := newOpenAITestServer(t, http.StatusOK, "You spent $42 on groceries.", &captured)
	defer server.Close()

	client := newTestOpenAIClient(t, server.URL)
	conv := NewConversation()
	conv.Append(RoleUser, "hi")
	conv.Append(RoleAssistant, "hello")

	reply, err := client.Chat(context.Background(), conv, "what did I spend?", nil)
	require.NoError(t, err)
	assert.Equal(t, "You spent $42 on groceries.", reply)
	assert.Equal(t, 4, conv.Len())

	// system + two history turns + current question
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 4)
}
