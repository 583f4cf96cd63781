// Package chart draws the sentiment trend series as a text heat strip: one
// row per sentiment, one column per day.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/tui/theme"
)

var levels = []rune(" ▁▂▃▄▅▆▇█")

const labelWidth = 10

// Render draws points within width columns. When there are more days than
// columns the most recent days are kept.
func Render(points []api.TrendPoint, width int, th theme.SentimentTheme) string {
	if len(points) == 0 {
		return ""
	}
	cols := max(1, width-labelWidth-6)
	if len(points) > cols {
		points = points[len(points)-cols:]
	}

	peak := 0
	for _, p := range points {
		for _, s := range api.Sentiments() {
			peak = max(peak, p.Count(s))
		}
	}

	var rows []string
	for _, s := range api.Sentiments() {
		style := lipgloss.NewStyle().Foreground(th.Color(s))
		var b strings.Builder
		total := 0
		for _, p := range points {
			n := p.Count(s)
			total += n
			b.WriteRune(Cell(n, peak))
		}
		label := fmt.Sprintf("%-*s", labelWidth, s.Title())
		rows = append(rows, label+style.Render(b.String())+fmt.Sprintf(" %d", total))
	}

	axis := points[0].Date
	if len(points) > 1 {
		last := points[len(points)-1].Date
		gap := len(points) - len(axis) - len(last)
		if gap >= 1 {
			axis += strings.Repeat(" ", gap) + last
		} else {
			axis += " .. " + last
		}
	}
	rows = append(rows, strings.Repeat(" ", labelWidth)+axis)
	return strings.Join(rows, "\n")
}

// Cell returns the block for n on a scale topping out at peak. Any non-zero
// count is at least the lowest block.
func Cell(n, peak int) rune {
	if n <= 0 || peak <= 0 {
		return levels[0]
	}
	top := len(levels) - 1
	i := (n*top + peak - 1) / peak
	return levels[min(max(i, 1), top)]
}
