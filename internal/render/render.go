// Package render turns analytics views into styled terminal text.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/analytics"
	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

const (
	filledCell = "■"
	todayCell  = "▣"
	emptyCell  = "·"
	barGlyph   = "█"
	rowLabelW  = 4
)

var weekdayLabels = [constants.GridRows]string{"", "Mon", "", "Wed", "", "Fri", ""}

// Streak renders the current and best streak line
func Streak(snap analytics.Snapshot) string {
	days := "days"
	if snap.CurrentStreak == 1 {
		days = "day"
	}
	return fmt.Sprintf("%s  %s",
		streakStyle.Render(fmt.Sprintf("🔥 %d %s streak", snap.CurrentStreak, days)),
		dimStyle.Render(fmt.Sprintf("best %d · %d days logged", snap.BestStreak, snap.TotalDays)),
	)
}

// Today renders today's record, or a prompt when nothing is logged
func Today(snap analytics.Snapshot) string {
	if snap.TodayRecord == nil {
		return dimStyle.Render(fmt.Sprintf("%s · no mood logged yet", snap.Today))
	}
	rec := snap.TodayRecord
	return fmt.Sprintf("%s · %s %s", snap.Today, rec.Emoji, colorStyle(rec.Color).Render(rec.Label))
}

// Trend renders the week-over-week verdict
func Trend(t models.Trend) string {
	line := fmt.Sprintf("%s %s", t.Icon, t.Message)
	if t.CurrentTop != "" {
		line += dimStyle.Render(fmt.Sprintf("  (mostly %s this week)", t.CurrentTop))
	}
	return line
}

// BarCells converts a bar width percentage into a number of glyphs
func BarCells(width float64) int {
	n := int(math.Round(width / 100 * constants.BarLength))
	if n < 1 {
		n = 1
	}
	return n
}

// Frequency renders the 30-day ranking as horizontal bars
func Frequency(entries []models.FrequencyEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No moods in the last 30 days.")
	}

	labelW := 0
	for _, e := range entries {
		labelW = max(labelW, lipgloss.Width(e.Mood.Label))
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		bar := colorStyle(e.Mood.Color).Render(strings.Repeat(barGlyph, BarCells(e.BarWidth)))
		fmt.Fprintf(&b, "%s %-*s %s %d", e.Mood.Emoji, labelW, e.Mood.Label, bar, e.Count)
	}
	return b.String()
}

// monthHeader lays out month labels over their columns, dropping any that
// would overlap the previous one.
func monthHeader(months []models.MonthLabel) string {
	width := rowLabelW + constants.GridCols*constants.HeatmapCellWidth
	line := []rune(strings.Repeat(" ", width))
	end := 0
	for _, m := range months {
		pos := rowLabelW + m.Col*constants.HeatmapCellWidth
		if pos < end || pos+len(m.Label) > width+2 {
			continue
		}
		for len(line) < pos+len(m.Label) {
			line = append(line, ' ')
		}
		copy(line[pos:], []rune(m.Label))
		end = pos + len(m.Label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// Heatmap renders the 7x12 grid. Logged days use the record's own color,
// unlogged days are dimmed and today is marked.
func Heatmap(grid models.Grid, months []models.MonthLabel, h models.History, today string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(monthHeader(months)))

	for row := 0; row < constants.GridRows; row++ {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-*s", rowLabelW, weekdayLabels[row])
		var cells []string
		for col := 0; col < constants.GridCols; col++ {
			cells = append(cells, heatmapCell(grid[row][col], h, today))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, ""), " "))
	}
	return b.String()
}

// Coverage summarises how many heatmap days carry a record
func Coverage(grid models.Grid, h models.History) string {
	cells := grid.Cells()
	logged := 0
	for _, c := range cells {
		if h.Has(c.DateKey) {
			logged++
		}
	}
	return dimStyle.Render(fmt.Sprintf("%d of %d days logged", logged, len(cells)))
}

func heatmapCell(cell *models.GridCell, h models.History, today string) string {
	pad := strings.Repeat(" ", constants.HeatmapCellWidth-1)
	if cell == nil {
		return " " + pad
	}
	rec, logged := h[cell.DateKey]
	glyph := filledCell
	if cell.DateKey == today {
		glyph = todayCell
	}
	switch {
	case logged && cell.DateKey == today:
		return todayStyle.Inherit(colorStyle(rec.Color)).Render(glyph) + pad
	case logged:
		return colorStyle(rec.Color).Render(glyph) + pad
	case cell.DateKey == today:
		return todayStyle.Render(glyph) + pad
	default:
		return dimStyle.Render(emptyCell) + pad
	}
}

// Moods lists the catalog
func Moods() string {
	var lines []string
	for _, m := range catalog.All() {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			m.Emoji,
			colorStyle(m.Color).Render(fmt.Sprintf("%-8s", m.Label)),
			dimStyle.Render(fmt.Sprintf("positivity %d", m.Positivity)),
		))
	}
	return strings.Join(lines, "\n")
}

// Dashboard renders every view of snap
func Dashboard(snap analytics.Snapshot, h models.History) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render(titleStyle.Render("moodlit")+"  "+Today(snap)),
		sectionStyle.Render(Streak(snap)),
		sectionStyle.Render(Heatmap(snap.Grid, snap.Months, h, snap.Today)),
		sectionStyle.Render(Trend(snap.Trend)),
		titleStyle.Render("Last 30 days"),
		Frequency(snap.Frequency),
	)
}

// Warning renders a non-fatal notice
func Warning(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}
