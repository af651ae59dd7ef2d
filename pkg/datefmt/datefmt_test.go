package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNormalizer(year int) *Normalizer {
	return &Normalizer{
		Now:      func() time.Time { return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func TestNormalizeDate(t *testing.T) {
	n := fixedNormalizer(2025)

	cases := map[string]string{
		"":                          "",
		"4/8":                       "04/08/2025",
		"12/25/24":                  "12/25/2024",
		"1/2/2023":                  "01/02/2023",
		"01/02/2023":                "01/02/2023",
		"2024-03-05T10:00:00Z":      "03/05/2024",
		"2024-03-05T10:00:00.000Z":  "03/05/2024",
		"2024-03-05T23:30:00-02:00": "03/06/2024",
		"2024-03-05T10:00":          "03/05/2024",
		"Tomorrow":                  "Tomorrow",
		"2024-03-05":                "2024-03-05",
		"1/2/3/4":                   "1/2/3/4",
		"3/4/123":                   "03/04/123",
	}

	for input, want := range cases {
		assert.Equal(t, want, n.NormalizeDate(input), "input %q", input)
	}
}

func TestNormalizeDateIsIdempotentForCanonicalShapes(t *testing.T) {
	n := fixedNormalizer(2025)

	for _, input := range []string{"04/08/2025", "12/31/1999", "04/08", "11/30"} {
		once := n.NormalizeDate(input)
		assert.Equal(t, once, n.NormalizeDate(once), "input %q", input)
	}
}

func TestNormalizeTime(t *testing.T) {
	n := fixedNormalizer(2025)

	cases := map[string]string{
		"":      "",
		"9":     "09:00",
		"0":     "00:00",
		"23":    "23:00",
		"25":    "25",
		"9:05":  "09:05",
		"23:59": "23:59",
		"24:00": "24:00",
		"7:60":  "7:60",
		"99:99": "99:99",
		"noon":  "noon",
		"9.30":  "9.30",
	}

	for input, want := range cases {
		assert.Equal(t, want, n.NormalizeTime(input), "input %q", input)
	}
}

func TestParseCanonicalDate(t *testing.T) {
	n := fixedNormalizer(2025)

	got, ok := n.ParseCanonicalDate("03/05/2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = n.ParseCanonicalDate("03/05")
	assert.False(t, ok)

	_, ok = n.ParseCanonicalDate("aa/05/2024")
	assert.False(t, ok)

	_, ok = n.ParseCanonicalDate("")
	assert.False(t, ok)
}

func TestIsCanonicalDate(t *testing.T) {
	assert.True(t, IsCanonicalDate("03/05/2024"))
	assert.False(t, IsCanonicalDate("3/5/2024"))
	assert.False(t, IsCanonicalDate("2024-03-05"))
}

func TestSetDefaultLocation(t *testing.T) {
	t.Cleanup(func() { SetDefaultLocation(nil) })

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	SetDefaultLocation(time.UTC)
	assert.Equal(t, "03/01/2025", NormalizeDate("2025-03-01T05:00:00Z"))

	SetDefaultLocation(loc)
	assert.Equal(t, "02/28/2025", NormalizeDate("2025-03-01T05:00:00Z"))
	parsed, ok := ParseCanonicalDate("02/28/2025")
	require.True(t, ok)
	assert.Equal(t, loc, parsed.Location())
}
