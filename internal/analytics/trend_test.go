package analytics

import (
	"testing"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

func records(labels ...string) []models.MoodRecord {
	out := make([]models.MoodRecord, len(labels))
	for i, l := range labels {
		out[i] = models.MoodRecord{Label: l}
	}
	return out
}

func TestWeekEntries(t *testing.T) {
	h := historyAt(refNow, "Happy", 0, 3, 6)
	addAt(h, refNow, "Sad", 7, 13)
	addAt(h, refNow, "Angry", 14)

	current := WeekEntries(h, refNow, 0)
	if len(current) != 3 {
		t.Fatalf("current week has %d entries, want 3", len(current))
	}
	for _, e := range current {
		if e.Label != "Happy" {
			t.Errorf("current week contains %q", e.Label)
		}
	}

	previous := WeekEntries(h, refNow, 7)
	if len(previous) != 2 {
		t.Fatalf("previous week has %d entries, want 2", len(previous))
	}
	for _, e := range previous {
		if e.Label != "Sad" {
			t.Errorf("previous week contains %q", e.Label)
		}
	}
}

func TestWeekEntriesOrder(t *testing.T) {
	h := historyAt(refNow, "Calm", 5)
	addAt(h, refNow, "Tired", 1)
	got := WeekEntries(h, refNow, 0)
	if len(got) != 2 || got[0].Label != "Tired" || got[1].Label != "Calm" {
		t.Errorf("WeekEntries() = %v, want most recent offset first", got)
	}
}

func TestAveragePositivity(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.MoodRecord
		want    float64
	}{
		{"empty", nil, 0},
		{"single", records("Excited"), 8},
		{"mixed", records("Happy", "Sad"), 4.5},
		{"unknown label is neutral", records("Bewildered", "Excited"), 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AveragePositivity(tt.entries); got != tt.want {
				t.Errorf("AveragePositivity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMostFrequentLabel(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.MoodRecord
		want    string
		ok      bool
	}{
		{"empty", nil, "", false},
		{"clear winner", records("Sad", "Happy", "Sad"), "Sad", true},
		{"tie goes to first encountered", records("Calm", "Sad", "Sad", "Calm"), "Calm", true},
		{"tie ignores catalog order", records("Angry", "Happy"), "Angry", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MostFrequentLabel(tt.entries)
			if got != tt.want || ok != tt.ok {
				t.Errorf("MostFrequentLabel() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  []models.MoodRecord
		previous []models.MoodRecord
		want     constants.TrendVerdict
	}{
		{"both empty", nil, nil, constants.TrendNoData},
		{"current empty", nil, records("Happy"), constants.TrendEmptyCurrent},
		{"previous empty", records("Happy"), nil, constants.TrendEmptyPrevious},
		{"upward", records("Excited", "Happy"), records("Neutral", "Tired"), constants.TrendUp},
		{"downward", records("Sad"), records("Calm"), constants.TrendDown},
		{"steady within band", records("Calm", "Neutral"), records("Calm", "Calm"), constants.TrendSteady},
		{"exactly half a point is steady", records("Happy", "Calm"), records("Calm", "Calm"), constants.TrendSteady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTrend(tt.current, tt.previous)
			if got.Verdict != tt.want {
				t.Errorf("ClassifyTrend() verdict = %q, want %q (cur %.2f, prev %.2f)",
					got.Verdict, tt.want, got.CurrentAvg, got.PreviousAvg)
			}
			if got.Icon == "" || got.Message == "" {
				t.Errorf("ClassifyTrend() left icon or message empty: %+v", got)
			}
		})
	}
}

func TestWeeklyTrendDownward(t *testing.T) {
	// five Happy days last week, five Sad days this week
	h := historyAt(refNow, "Happy", 7, 8, 9, 10, 11)
	addAt(h, refNow, "Sad", 0, 1, 2, 3, 4)

	trend := WeeklyTrend(h, refNow)
	if trend.Verdict != constants.TrendDown {
		t.Errorf("WeeklyTrend() verdict = %q, want %q", trend.Verdict, constants.TrendDown)
	}
	if trend.CurrentTop != "Sad" {
		t.Errorf("current week top label = %q, want Sad", trend.CurrentTop)
	}
	if trend.PreviousTop != "Happy" {
		t.Errorf("previous week top label = %q, want Happy", trend.PreviousTop)
	}
	if trend.CurrentAvg != 2 || trend.PreviousAvg != 7 {
		t.Errorf("averages = (%v, %v), want (2, 7)", trend.CurrentAvg, trend.PreviousAvg)
	}
}

func TestWeeklyTrendIgnoresOlderDays(t *testing.T) {
	h := historyAt(refNow, "Angry", 14, 20)
	if got := WeeklyTrend(h, refNow).Verdict; got != constants.TrendNoData {
		t.Errorf("WeeklyTrend() verdict = %q, want %q", got, constants.TrendNoData)
	}
}
