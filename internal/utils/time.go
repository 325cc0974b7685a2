package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
)

// DateKey formats the local calendar day of t (in t's location) as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TodayKey returns the date-key of now.
func TodayKey(now time.Time) string {
	return DateKey(now)
}

// DaysAgoKey returns the date-key of the calendar day n days before now.
// The subtraction is done on the calendar, anchored at noon, so a DST
// transition between the two days can never shift the result.
func DaysAgoKey(now time.Time, n int) string {
	return DateKey(DaysAgo(now, n))
}

// DaysAgo returns noon of the calendar day n days before now, in now's location.
func DaysAgo(now time.Time, n int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-n, 12, 0, 0, 0, now.Location())
}

// ParseDateKey parses a date-key strictly: the input must be exactly the
// canonical zero-padded form of a real calendar day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-key %q: %w", key, err)
	}
	if t.Format(constants.DateFormat) != key {
		return time.Time{}, fmt.Errorf("invalid date-key %q: not canonical", key)
	}
	return t, nil
}

// IsDateKey reports whether key is a well-formed date-key.
func IsDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// Both keys are interpreted in UTC so the difference is always a whole number of days.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDateKey(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDateKey(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
