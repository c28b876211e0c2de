package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/model"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain json untouched", input: `{"category": "Groceries"}`, want: `{"category": "Groceries"}`},
		{name: "json fence stripped", input: "```json\n{\"category\": \"Groceries\"}\n```", want: `{"category": "Groceries"}`},
		{name: "bare fence stripped", input: "```\n[1, 2]\n```", want: "[1, 2]"},
		{name: "surrounding whitespace trimmed", input: "  {\"a\": 1}\n", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}

func TestParseCategoryResponse(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		got, err := parseCategoryResponse(`{"category": "Transport"}`)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryTransport, got)
	})

	t.Run("fenced response", func(t *testing.T) {
		got, err := parseCategoryResponse("```json\n{\"category\": \"Rent\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, model.CategoryRent, got)
	})

	t.Run("category outside the allowed set", func(t *testing.T) {
		_, err := parseCategoryResponse(`{"category": "Cryptocurrency"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside the allowed set")
	})

	t.Run("missing category field", func(t *testing.T) {
		_, err := parseCategoryResponse(`{"label": "Groceries"}`)
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseCategoryResponse("Groceries, probably")
		require.Error(t, err)
	})
}

func TestParseForecastResponse(t *testing.T) {
	t.Run("valid series", func(t *testing.T) {
		points, err := parseForecastResponse(`[
			{"date": "2024-07-02", "forecast": 12.5},
			{"date": "2024-07-03", "forecast": 25.0}
		]`)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.True(t, points[0].Date.Equal(model.NewDate(2024, time.July, 2)))
		assert.Equal(t, 12.5, points[0].Forecast)
		assert.Equal(t, 25.0, points[1].Forecast)
	})

	t.Run("empty array rejected", func(t *testing.T) {
		_, err := parseForecastResponse(`[]`)
		require.Error(t, err)
	})

	t.Run("invalid date rejects the whole series", func(t *testing.T) {
		_, err := parseForecastResponse(`[
			{"date": "2024-07-02", "forecast": 12.5},
			{"date": "July 3rd", "forecast": 25.0}
		]`)
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseForecastResponse("no idea")
		require.Error(t, err)
	})
}
