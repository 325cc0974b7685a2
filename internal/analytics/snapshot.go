// Package analytics derives streaks, trends, frequencies and the heatmap
// layout from a day-keyed mood history. Every function is pure and takes
// the reference instant explicitly.
package analytics

import (
	"time"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// Snapshot is every derived view computed against a single "now"
type Snapshot struct {
	Now           time.Time               `json:"now"`
	Today         string                  `json:"today"`
	TodayRecord   *models.MoodRecord      `json:"today_record,omitempty"`
	CurrentStreak int                     `json:"current_streak"`
	BestStreak    int                     `json:"best_streak"`
	TotalDays     int                     `json:"total_days"`
	Trend         models.Trend            `json:"trend"`
	Frequency     []models.FrequencyEntry `json:"frequency"`
	Grid          models.Grid             `json:"-"`
	Months        []models.MonthLabel     `json:"months"`
}

// Compute runs all views against h with now captured once, so the streak,
// the grid and the windows agree on which day is today.
func Compute(h models.History, now time.Time) Snapshot {
	today := utils.TodayKey(now)
	grid := BuildGrid(now)

	s := Snapshot{
		Now:           now,
		Today:         today,
		CurrentStreak: CurrentStreak(h, now),
		BestStreak:    BestStreak(h, now),
		TotalDays:     len(validKeys(h)),
		Trend:         WeeklyTrend(h, now),
		Frequency:     Frequency30(h, now),
		Grid:          grid,
		Months:        MonthLabels(grid),
	}
	if rec, ok := h[today]; ok {
		s.TodayRecord = &rec
	}
	return s
}
