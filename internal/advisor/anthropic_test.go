package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/model"
)

func newAnthropicTestServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"type": "overloaded_error"}}`))
			return
		}
		resp := map[string]any{
			"id":    "msg-1",
			"type":  "message",
			"role":  "assistant",
			"model": "claude-3-sonnet-20240229",
			"content": []map[string]string{
				{"type": "text", "text": text},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAnthropicClient(t *testing.T, serverURL string) *anthropicClient {
	t.Helper()
	client, err := newAnthropicClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	ac := client.(*anthropicClient)
	ac.baseURL = serverURL
	return ac
}

func TestAnthropicClient_RequiresAPIKey(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	require.Error(t, err)
}

func TestAnthropicClient_SuggestCategory(t *testing.T) {
	server := newAnthropicTestServer(t, http.StatusOK, "```json\n{\"category\": \"Utilities\"}\n```")
	defer server.Close()

	client := newTestAnthropicClient(t, server.URL)
	category, err := client.SuggestCategory(context.Background(), "CITY WATER BILL")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryUtilities, category)
}

func TestAnthropicClient_ForecastExpenses(t *testing.T) {
	server := newAnthropicTestServer(t, http.StatusOK, `[{"date": "2024-07-02", "forecast": 18.0}]`)
	defer server.Close()

	client := newTestAnthropicClient(t, server.URL)
	points, err := client.ForecastExpenses(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Date.Equal(model.NewDate(2024, time.July, 2)))
	assert.Equal(t, 18.0, points[0].Forecast)
}

func TestAnthropicClient_SurfacesAPIErrors(t *testing.T) {
	server := newAnthropicTestServer(t, http.StatusTooManyRequests, "")
	defer server.Close()

	client := newTestAnthropicClient(t, server.URL)
	_, err := client.GenerateInsights(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
