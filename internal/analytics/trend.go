package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// WeekEntries collects the records of the 7 days starting startDaysAgo days
// before now. Days are visited from the most recent offset backwards and
// missing days are skipped; that visiting order is what MostFrequentLabel
// uses to break ties.
func WeekEntries(h models.History, now time.Time, startDaysAgo int) []models.MoodRecord {
	entries := make([]models.MoodRecord, 0, constants.WeekDays)
	for i := startDaysAgo; i < startDaysAgo+constants.WeekDays; i++ {
		if rec, ok := h[utils.DaysAgoKey(now, i)]; ok {
			entries = append(entries, rec)
		}
	}
	return entries
}

// AveragePositivity returns the mean catalog positivity of entries, or 0 when empty.
func AveragePositivity(entries []models.MoodRecord) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += catalog.Positivity(e.Label)
	}
	return float64(sum) / float64(len(entries))
}

// MostFrequentLabel returns the label occurring most often in entries.
// Ties go to the label encountered first.
func MostFrequentLabel(entries []models.MoodRecord) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if _, seen := counts[e.Label]; !seen {
			order = append(order, e.Label)
		}
		counts[e.Label]++
	}

	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best, true
}

// ClassifyTrend compares the current week against the previous one.
func ClassifyTrend(current, previous []models.MoodRecord) models.Trend {
	trend := models.Trend{
		CurrentAvg:  AveragePositivity(current),
		PreviousAvg: AveragePositivity(previous),
	}
	trend.CurrentTop, _ = MostFrequentLabel(current)
	trend.PreviousTop, _ = MostFrequentLabel(previous)

	switch {
	case len(current) == 0 && len(previous) == 0:
		trend.Verdict = constants.TrendNoData
	case len(current) == 0:
		trend.Verdict = constants.TrendEmptyCurrent
	case len(previous) == 0:
		trend.Verdict = constants.TrendEmptyPrevious
	case trend.CurrentAvg > trend.PreviousAvg+constants.TrendNoiseBand:
		trend.Verdict = constants.TrendUp
	case trend.CurrentAvg < trend.PreviousAvg-constants.TrendNoiseBand:
		trend.Verdict = constants.TrendDown
	default:
		trend.Verdict = constants.TrendSteady
	}

	trend.Icon, trend.Message = describeTrend(trend)
	return trend
}

// WeeklyTrend classifies the last 7 days (including today) against the 7 before.
func WeeklyTrend(h models.History, now time.Time) models.Trend {
	return ClassifyTrend(
		WeekEntries(h, now, 0),
		WeekEntries(h, now, constants.WeekDays),
	)
}

func describeTrend(t models.Trend) (icon, message string) {
	switch t.Verdict {
	case constants.TrendNoData:
		return "🌱", "No moods logged yet. Log today's mood to get started."
	case constants.TrendEmptyCurrent:
		return "📝", "Nothing logged this week yet. How are you feeling today?"
	case constants.TrendEmptyPrevious:
		return "⏳", "Keep logging: a trend needs two weeks of history to compare."
	case constants.TrendUp:
		return "📈", fmt.Sprintf("Trending up: this week averages %.1f vs %.1f last week.", t.CurrentAvg, t.PreviousAvg)
	case constants.TrendDown:
		return "📉", fmt.Sprintf("Trending down: this week averages %.1f vs %.1f last week.", t.CurrentAvg, t.PreviousAvg)
	default:
		return "➡️", fmt.Sprintf("Holding steady around %.1f.", t.CurrentAvg)
	}
}
