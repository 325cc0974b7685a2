package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// Frequency30 ranks the moods logged over the 30 days ending today.
// Moods with no occurrences are omitted; equal counts keep catalog order.
func Frequency30(h models.History, now time.Time) []models.FrequencyEntry {
	counts := make(map[string]int)
	for i := 0; i < constants.FrequencyWindow; i++ {
		if rec, ok := h[utils.DaysAgoKey(now, i)]; ok {
			counts[rec.Label]++
		}
	}

	var entries []models.FrequencyEntry
	for _, def := range catalog.All() {
		if n := counts[def.Label]; n > 0 {
			entries = append(entries, models.FrequencyEntry{Mood: def, Count: n})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	maxCount := 1
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	for i := range entries {
		entries[i].BarWidth = BarWidth(entries[i].Count, maxCount)
	}
	return entries
}

// BarWidth is the display width of count as a percent of maxCount,
// never below MinBarWidth so small counts stay visible.
func BarWidth(count, maxCount int) float64 {
	if maxCount < 1 {
		maxCount = 1
	}
	w := float64(count) / float64(maxCount) * 100
	if w < constants.MinBarWidth {
		return constants.MinBarWidth
	}
	return w
}
