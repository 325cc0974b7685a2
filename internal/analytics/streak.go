package analytics

import (
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// CurrentStreak counts consecutive logged days ending today, or ending
// yesterday when today has not been logged yet. The scan stops at the
// first missing day and never looks further back than StreakScanCap days.
func CurrentStreak(h models.History, now time.Time) int {
	start := 1
	if h.Has(utils.TodayKey(now)) {
		start = 0
	}

	streak := 0
	for i := 0; i < constants.StreakScanCap; i++ {
		if !h.Has(utils.DaysAgoKey(now, start+i)) {
			break
		}
		streak++
	}
	return streak
}

// BestStreak returns the longest run of consecutive calendar days in h.
// An ongoing streak that has not been closed by a gap is included via
// CurrentStreak. Malformed date-keys are ignored.
func BestStreak(h models.History, now time.Time) int {
	if len(h) == 0 {
		return 0
	}

	keys := validKeys(h)
	best := 0
	if len(keys) > 0 {
		best = 1
		run := 1
		for i := 1; i < len(keys); i++ {
			diff, err := utils.DaysBetween(keys[i-1], keys[i])
			if err == nil && diff == 1 {
				run++
				if run > best {
					best = run
				}
			} else {
				run = 1
			}
		}
	}

	if cur := CurrentStreak(h, now); cur > best {
		best = cur
	}
	return best
}

// validKeys returns the well-formed date-keys of h in ascending order
func validKeys(h models.History) []string {
	all := h.Keys()
	keys := all[:0]
	for _, k := range all {
		if utils.IsDateKey(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
