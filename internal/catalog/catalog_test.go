package catalog

import (
	"regexp"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	all := All()
	if len(all) != 8 || Len() != 8 {
		t.Fatalf("catalog has %d entries, want 8", len(all))
	}

	hex := regexp.MustCompile(`^#[0-9A-F]{6}$`)
	labels := make(map[string]bool)
	scores := make(map[int]bool)
	for _, m := range all {
		if labels[m.Label] {
			t.Errorf("duplicate label %q", m.Label)
		}
		labels[m.Label] = true
		scores[m.Positivity] = true

		if m.Positivity < 1 || m.Positivity > 8 {
			t.Errorf("%s positivity = %d, want 1-8", m.Label, m.Positivity)
		}
		if !hex.MatchString(m.Color) {
			t.Errorf("%s color %q is not an RGB hex", m.Label, m.Color)
		}
	}
	if len(scores) != 8 {
		t.Errorf("expected 8 distinct positivity scores, got %d", len(scores))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Label = "Mutated"
	if _, ok := Lookup("Mutated"); ok {
		t.Error("mutating All() result changed the catalog")
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Happy", "Happy", true},
		{"happy", "Happy", true},
		{"  SAD ", "Sad", true},
		{"😴", "Tired", true},
		{"ecstatic", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Find(tt.input)
		if ok != tt.ok || got.Label != tt.want {
			t.Errorf("Find(%q) = (%q, %v), want (%q, %v)", tt.input, got.Label, ok, tt.want, tt.ok)
		}
	}
}

func TestPositivity(t *testing.T) {
	if got := Positivity("Excited"); got != 8 {
		t.Errorf("Positivity(Excited) = %d, want 8", got)
	}
	if got := Positivity("Angry"); got != 1 {
		t.Errorf("Positivity(Angry) = %d, want 1", got)
	}
	if got := Positivity("Bewildered"); got != 5 {
		t.Errorf("Positivity(unknown) = %d, want neutral 5", got)
	}
}
