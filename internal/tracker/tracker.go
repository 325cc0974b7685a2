// Package tracker owns the in-memory mood history and the actions that
// change it. Storage failures are logged and absorbed: after a failed write
// the in-memory history stays authoritative for the session.
package tracker

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/moodlit/internal/analytics"
	"github.com/julianstephens/moodlit/internal/catalog"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/utils"
)

type Tracker struct {
	store   storage.Provider
	history models.History
}

func New(store storage.Provider) *Tracker {
	return &Tracker{
		store:   store,
		history: models.NewHistory(),
	}
}

// Load replaces the in-memory history with the stored one. An unreadable
// store yields an empty history.
func (t *Tracker) Load() {
	h, err := t.store.Load()
	if err != nil {
		logger.Warn("Failed to load mood history, starting empty", "store", t.store.GetConfigPath(), "error", err)
		h = models.NewHistory()
	}
	if h == nil {
		h = models.NewHistory()
	}
	t.history = h
	logger.Debug("History loaded", "days", len(h))
}

// LogMood records input (a label, matched case-insensitively, or an emoji)
// for the calendar day of now. It reports whether an existing record for
// that day was replaced.
func (t *Tracker) LogMood(input string, now time.Time) (models.MoodRecord, bool, error) {
	def, ok := catalog.Find(input)
	if !ok {
		return models.MoodRecord{}, false, fmt.Errorf("%w: %q", apperrors.ErrUnknownMood, input)
	}

	rec := models.NewMoodRecord(def, now)
	replaced := t.history.Set(utils.TodayKey(now), rec)
	t.persist()
	logger.Debug("Logged mood", "day", utils.TodayKey(now), "label", rec.Label, "replaced", replaced)
	return rec, replaced, nil
}

// Reset drops the whole history, in memory and in the store
func (t *Tracker) Reset() {
	t.history = models.NewHistory()
	if err := t.store.Clear(); err != nil {
		logger.Warn("Failed to clear stored history", "store", t.store.GetConfigPath(), "error", err)
	}
}

// Seed fills up to days past days (never today) with random moods for
// demos. Days that already hold a record are left alone and roughly
// SeedSkipPercent of days are skipped to leave gaps. It returns the number
// of records added.
func (t *Tracker) Seed(days int, now time.Time, rng *rand.Rand) int {
	moods := catalog.All()
	added := 0
	for off := 1; off <= days; off++ {
		key := utils.DaysAgoKey(now, off)
		if t.history.Has(key) {
			continue
		}
		if rng.Intn(100) < constants.SeedSkipPercent {
			continue
		}
		def := moods[rng.Intn(len(moods))]
		at := utils.DaysAgo(now, off).Add(time.Duration(rng.Intn(10*60)-5*60) * time.Minute)
		t.history.Set(key, models.NewMoodRecord(def, at))
		added++
	}
	if added > 0 {
		t.persist()
	}
	return added
}

// Import merges h into the history; records in h win on conflict
func (t *Tracker) Import(h models.History) int {
	for k, rec := range h {
		t.history.Set(k, rec)
	}
	if len(h) > 0 {
		t.persist()
	}
	return len(h)
}

// History returns a copy of the current history
func (t *Tracker) History() models.History {
	return t.history.Clone()
}

// Snapshot computes every derived view against now
func (t *Tracker) Snapshot(now time.Time) analytics.Snapshot {
	return analytics.Compute(t.history, now)
}

// Store returns the underlying provider
func (t *Tracker) Store() storage.Provider {
	return t.store
}

func (t *Tracker) persist() {
	if err := t.store.Save(t.history); err != nil {
		logger.Warn("Failed to save mood history; change kept in memory only", "store", t.store.GetConfigPath(), "error", err)
	}
}
