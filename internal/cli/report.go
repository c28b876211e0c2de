package cli

import (
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/model"
)

const barWidth = 30

// RenderCategorySpend renders per-category spending as horizontal bars
// scaled to the largest category.
func RenderCategorySpend(spend []model.CategorySpend) string {
	if len(spend) == 0 {
		return SubtleStyle.Render("No spending recorded.")
	}

	max := spend[0].Amount
	for _, s := range spend {
		if s.Amount > max {
			max = s.Amount
		}
	}

	var b strings.Builder
	for _, s := range spend {
		width := 1
		if max > 0 {
			width = int(s.Amount / max * barWidth)
			if width < 1 {
				width = 1
			}
		}
		bar := BarStyle.Render(strings.Repeat("█", width))
		b.WriteString(fmt.Sprintf("%-13s %s %.0f\n", s.Category, bar, s.Amount))
	}

	return b.String()
}

// RenderSpendSeries renders the merged actual and forecast cumulative spend
// as an aligned table. Gaps in either series are left blank.
func RenderSpendSeries(series []model.SeriesPoint) string {
	if len(series) == 0 {
		return SubtleStyle.Render("Nothing to project yet.")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-10s  %12s  %12s", "DATE", "ACTUAL", "FORECAST")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, p := range series {
		actual := fmt.Sprintf("%.2f", p.Actual)
		forecast := ""
		if p.Forecast != nil {
			forecast = SubtleStyle.Render(fmt.Sprintf("%.2f", *p.Forecast))
		}
		b.WriteString(fmt.Sprintf("%-10s  %12s  %12s\n", p.Date.String(), actual, forecast))
	}

	return b.String()
}
