package models

import (
	"sort"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
)

// MoodDefinition is one entry of the fixed mood catalog
type MoodDefinition struct {
	Emoji      string `json:"emoji"`
	Label      string `json:"label"`
	Color      string `json:"color"`      // RGB hex, e.g. "#FFD93D"
	Positivity int    `json:"positivity"` // 1 (lowest) to 8 (highest)
}

// MoodRecord is the single observation logged for one calendar day.
// Emoji and Color are copied from the catalog at logging time so later
// catalog edits never rewrite history.
type MoodRecord struct {
	Emoji     string    `json:"emoji"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMoodRecord denormalizes a catalog entry into a record logged at now
func NewMoodRecord(def MoodDefinition, now time.Time) MoodRecord {
	return MoodRecord{
		Emoji:     def.Emoji,
		Label:     def.Label,
		Color:     def.Color,
		Timestamp: now,
	}
}

// History maps a date-key (YYYY-MM-DD) to the record logged for that day.
// There is at most one record per key.
type History map[string]MoodRecord

// NewHistory returns an empty history
func NewHistory() History {
	return make(History)
}

// Has reports whether a record exists for the given date-key
func (h History) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Set stores rec under key, replacing any prior record for that day.
// It reports whether a record was replaced.
func (h History) Set(key string, rec MoodRecord) bool {
	_, existed := h[key]
	h[key] = rec
	return existed
}

// Keys returns all date-keys in ascending lexical order
func (h History) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of the history
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// GridCell places one calendar day in the heatmap matrix
type GridCell struct {
	DateKey string `json:"date_key"`
	Row     int    `json:"row"` // day of week, 0=Sunday
	Col     int    `json:"col"` // week index, GridCols-1 = most recent week
}

// Grid is the dense rows x cols heatmap matrix; nil entries are uncovered positions
type Grid [constants.GridRows][constants.GridCols]*GridCell

// Cells returns the populated cells in column-major order (oldest first)
func (g *Grid) Cells() []GridCell {
	var cells []GridCell
	for col := 0; col < constants.GridCols; col++ {
		for row := 0; row < constants.GridRows; row++ {
			if c := g[row][col]; c != nil {
				cells = append(cells, *c)
			}
		}
	}
	return cells
}

// MonthLabel is a month name positioned above a heatmap column
type MonthLabel struct {
	Label string `json:"label"`
	Col   int    `json:"col"`
}

// FrequencyEntry is one ranked row of the 30-day frequency view
type FrequencyEntry struct {
	Mood     MoodDefinition `json:"mood"`
	Count    int            `json:"count"`
	BarWidth float64        `json:"bar_width"` // percent, floored at constants.MinBarWidth
}

// Trend is the week-over-week verdict plus the inputs that produced it
type Trend struct {
	Verdict     constants.TrendVerdict `json:"verdict"`
	Icon        string                 `json:"icon"`
	Message     string                 `json:"message"`
	CurrentAvg  float64                `json:"current_avg"`
	PreviousAvg float64                `json:"previous_avg"`
	CurrentTop  string                 `json:"current_top,omitempty"`
	PreviousTop string                 `json:"previous_top,omitempty"`
}
