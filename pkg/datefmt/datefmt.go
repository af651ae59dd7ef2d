// Package datefmt normalizes the loosely formatted dates and times typed into the
// back-office forms into the canonical MM/DD/YYYY and HH:mm strings that are stored.
package datefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the stored date layout.
const CanonicalLayout = "01/02/2006"

var (
	bareHourPattern  = regexp.MustCompile(`^\d{1,2}$`)
	hourMinPattern   = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	canonicalPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

var isoLayouts = []struct {
	layout  string
	hasZone bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04", false},
}

// Normalizer converts raw input into canonical forms. The zero value uses time.Now
// and time.Local.
type Normalizer struct {
	Now      func() time.Time
	Location *time.Location
}

var defaultNormalizer = &Normalizer{}

// SetDefaultLocation sets the zone used by the package-level functions. Call it once at
// startup, before any of them run.
func SetDefaultLocation(loc *time.Location) {
	defaultNormalizer = &Normalizer{Location: loc}
}

// NormalizeDate normalizes input with the default normalizer.
func NormalizeDate(input string) string { return defaultNormalizer.NormalizeDate(input) }

// NormalizeTime normalizes input with the default normalizer.
func NormalizeTime(input string) string { return defaultNormalizer.NormalizeTime(input) }

// ParseCanonicalDate parses s with the default normalizer.
func ParseCanonicalDate(s string) (time.Time, bool) { return defaultNormalizer.ParseCanonicalDate(s) }

// IsCanonicalDate reports whether s is strictly MM/DD/YYYY.
func IsCanonicalDate(s string) bool { return canonicalPattern.MatchString(s) }

func (n *Normalizer) now() time.Time {
	if n == nil || n.Now == nil {
		return time.Now().In(n.location())
	}
	return n.Now().In(n.location())
}

func (n *Normalizer) location() *time.Location {
	if n == nil || n.Location == nil {
		return time.Local
	}
	return n.Location
}

// NormalizeDate returns input as MM/DD/YYYY when it is an ISO timestamp, an M/D pair or
// an M/D/Y triple. Any other input is returned unchanged.
func (n *Normalizer) NormalizeDate(input string) string {
	if input == "" {
		return input
	}

	switch {
	case strings.Contains(input, "T"):
		t, ok := n.parseISO(input)
		if !ok {
			return input
		}
		return t.Format(CanonicalLayout)
	case strings.Contains(input, "/"):
		parts := strings.Split(input, "/")
		switch len(parts) {
		case 2:
			return fmt.Sprintf("%s/%s/%d", padTwo(parts[0]), padTwo(parts[1]), n.now().Year())
		case 3:
			year := parts[2]
			if len(year) == 2 {
				year = "20" + year
			}
			return fmt.Sprintf("%s/%s/%s", padTwo(parts[0]), padTwo(parts[1]), year)
		}
	}

	return input
}

func (n *Normalizer) parseISO(input string) (time.Time, bool) {
	for _, candidate := range isoLayouts {
		var (
			t   time.Time
			err error
		)
		if candidate.hasZone {
			t, err = time.Parse(candidate.layout, input)
		} else {
			t, err = time.ParseInLocation(candidate.layout, input, n.location())
		}
		if err == nil {
			return t.In(n.location()), true
		}
	}
	return time.Time{}, false
}

// NormalizeTime returns input as HH:mm when it is a bare hour or an H:MM pair inside the
// 24-hour clock. Anything else is returned unchanged.
func (n *Normalizer) NormalizeTime(input string) string {
	if input == "" {
		return input
	}

	if bareHourPattern.MatchString(input) {
		hour, _ := strconv.Atoi(input)
		if hour <= 23 {
			return fmt.Sprintf("%02d:00", hour)
		}
		return input
	}

	if hourMinPattern.MatchString(input) {
		hh, mm, _ := strings.Cut(input, ":")
		hour, _ := strconv.Atoi(hh)
		minute, _ := strconv.Atoi(mm)
		if hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	return input
}

// ParseCanonicalDate parses an MM/DD/YYYY string to midnight in the normalizer's
// location. Out-of-range components roll over the way time.Date does.
func (n *Normalizer) ParseCanonicalDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, false
		}
		values[i] = v
	}

	return time.Date(values[2], time.Month(values[0]), values[1], 0, 0, 0, 0, n.location()), true
}

func padTwo(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
