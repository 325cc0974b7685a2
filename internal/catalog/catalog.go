// Package catalog holds the fixed, ordered set of moods a day can be logged with.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

// Order matters: it breaks frequency ties and drives picker ordering.
var moods = [...]models.MoodDefinition{
	{Emoji: "😊", Label: "Happy", Color: "#FFD93D", Positivity: 7},
	{Emoji: "🤩", Label: "Excited", Color: "#FF9F1C", Positivity: 8},
	{Emoji: "😌", Label: "Calm", Color: "#6BCB77", Positivity: 6},
	{Emoji: "😐", Label: "Neutral", Color: "#B0B0B0", Positivity: 5},
	{Emoji: "😴", Label: "Tired", Color: "#9B89B3", Positivity: 4},
	{Emoji: "😰", Label: "Anxious", Color: "#F4A261", Positivity: 3},
	{Emoji: "😢", Label: "Sad", Color: "#4D96FF", Positivity: 2},
	{Emoji: "😠", Label: "Angry", Color: "#E63946", Positivity: 1},
}

// All returns a copy of the catalog in its fixed order
func All() []models.MoodDefinition {
	out := make([]models.MoodDefinition, len(moods))
	copy(out, moods[:])
	return out
}

// Len returns the number of catalog entries
func Len() int {
	return len(moods)
}

// Lookup returns the definition with exactly the given label
func Lookup(label string) (models.MoodDefinition, bool) {
	for _, m := range moods {
		if m.Label == label {
			return m, true
		}
	}
	return models.MoodDefinition{}, false
}

// Find resolves user input to a definition. It matches labels case-insensitively
// (Unicode case folding) and also accepts the emoji itself.
func Find(input string) (models.MoodDefinition, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.MoodDefinition{}, false
	}
	fold := cases.Fold()
	want := fold.String(input)
	for _, m := range moods {
		if m.Emoji == input || fold.String(m.Label) == want {
			return m, true
		}
	}
	return models.MoodDefinition{}, false
}

// Positivity returns the score for label; unrecognized labels are neutral.
func Positivity(label string) int {
	if m, ok := Lookup(label); ok {
		return m.Positivity
	}
	return constants.NeutralPositivity
}
