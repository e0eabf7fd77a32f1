package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUnix(t *testing.T) {
	assert.Equal(t, "2023-11-14 22:13:20 UTC", FormatUnix(1700000000, time.UTC))
}

func TestFormatUnixNilLocationUsesLocal(t *testing.T) {
	assert.Equal(t, FormatUnix(1700000000, time.Local), FormatUnix(1700000000, nil))
}

func TestRelative(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "a few seconds ago"},
		{"under a minute", 44 * time.Second, "a few seconds ago"},
		{"a minute low", 45 * time.Second, "a minute ago"},
		{"a minute high", 89 * time.Second, "a minute ago"},
		{"minutes low", 90 * time.Second, "2 minutes ago"},
		{"minutes high", 44 * time.Minute, "44 minutes ago"},
		{"an hour low", 45 * time.Minute, "an hour ago"},
		{"an hour high", 89 * time.Minute, "an hour ago"},
		{"hours low", 90 * time.Minute, "2 hours ago"},
		{"hours high", 21 * time.Hour, "21 hours ago"},
		{"a day low", 22 * time.Hour, "a day ago"},
		{"a day high", 35 * time.Hour, "a day ago"},
		{"days low", 36 * time.Hour, "2 days ago"},
		{"days high", 25 * 24 * time.Hour, "25 days ago"},
		{"a month low", 26 * 24 * time.Hour, "a month ago"},
		{"a month high", 45 * 24 * time.Hour, "a month ago"},
		{"months low", 46 * 24 * time.Hour, "2 months ago"},
		{"months high", 319 * 24 * time.Hour, "11 months ago"},
		{"a year low", 320 * 24 * time.Hour, "a year ago"},
		{"a year high", 547 * 24 * time.Hour, "a year ago"},
		{"years", 548 * 24 * time.Hour, "2 years ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Relative(now.Add(-tc.ago), now))
		})
	}
}

func TestRelativeFutureCollapses(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "a few seconds ago", Relative(now.Add(time.Hour), now))
}
