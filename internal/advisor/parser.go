package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/model"
)

// cleanMarkdownWrapper strips ```json fences that models sometimes emit
// despite being told not to.
func cleanMarkdownWrapper(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// parseCategoryResponse extracts a category from a provider JSON response.
// Values outside the closed category set are an error; callers fall back to
// CategoryOther.
func parseCategoryResponse(content string) (model.Category, error) {
	var resp struct {
		Category string `json:"category"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return "", fmt.Errorf("failed to parse category response: %w", err)
	}
	if resp.Category == "" {
		return "", fmt.Errorf("no category found in response")
	}

	category, ok := model.ParseCategory(resp.Category)
	if !ok {
		return "", fmt.Errorf("category %q is outside the allowed set", resp.Category)
	}
	return category, nil
}

// parseForecastResponse extracts a forecast series from a provider JSON
// response. Points with unparseable dates are an error: a partially valid
// forecast is worse than the heuristic fallback.
func parseForecastResponse(content string) ([]model.ForecastPoint, error) {
	var resp []struct {
		Date     string  `json:"date"`
		Forecast float64 `json:"forecast"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("empty forecast response")
	}

	points := make([]model.ForecastPoint, 0, len(resp))
	for _, p := range resp {
		date, err := model.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast point has invalid date: %w", err)
		}
		points = append(points, model.ForecastPoint{Date: date, Forecast: p.Forecast})
	}
	return points, nil
}
