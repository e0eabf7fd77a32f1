// Package timeutil provides the timestamp formatting used by the daemon
// health table: localized absolute timestamps and natural-language
// "time ago" strings.
package timeutil

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// AbsoluteLayout renders timestamps as e.g. "2023-11-14 22:13:20 UTC".
const AbsoluteLayout = "2006-01-02 15:04:05 MST"

// FormatUnix renders a Unix timestamp (seconds) in the given timezone.
func FormatUnix(sec int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(sec, 0).In(loc).Format(AbsoluteLayout)
}

// Relative returns a natural-language "time since" expression for t as seen
// from now, e.g. "a few seconds ago" or "3 minutes ago". The thresholds
// match the dashboard's original relative-time formatter. Times at or after
// now collapse to "a few seconds ago".
func Relative(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()
	if seconds < 0 {
		seconds = 0
	}

	minutes := math.Round(seconds / 60)
	hours := math.Round(seconds / 3600)
	days := math.Round(seconds / 86400)
	months := math.Round(days / 30)
	years := math.Round(days / 365)

	switch {
	case seconds < 45:
		return "a few seconds ago"
	case seconds < 90:
		return "a minute ago"
	case minutes < 45:
		return fmt.Sprintf("%.0f minutes ago", minutes)
	case minutes < 90:
		return "an hour ago"
	case hours < 22:
		return fmt.Sprintf("%.0f hours ago", hours)
	case hours < 36:
		return "a day ago"
	case days < 26:
		return fmt.Sprintf("%.0f days ago", days)
	case days < 46:
		return "a month ago"
	case days < 320:
		return fmt.Sprintf("%.0f months ago", months)
	case days < 548:
		return "a year ago"
	default:
		return fmt.Sprintf("%.0f years ago", years)
	}
}

// DetectZone returns the viewer's local timezone. The TZ environment
// variable wins; otherwise /etc/timezone is consulted before falling back
// to time.Local.
func DetectZone() *time.Location {
	if name := strings.TrimSpace(os.Getenv("TZ")); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		if loc, err := time.LoadLocation(strings.TrimSpace(string(data))); err == nil {
			return loc
		}
	}
	return time.Local
}
