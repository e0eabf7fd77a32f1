package metrics

import (
	"math"
	"sort"
	"time"

	"daemonwatch/internal/models"
)

// TargetUptime summarises check outcomes for one monitored target.
type TargetUptime struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	UptimePercent float64 `json:"uptime_percent"`
	TotalRuns     int     `json:"total_runs"`
	Passing       int     `json:"passing"`
	Failing       int     `json:"failing"`
	LastChecked   string  `json:"last_checked,omitempty"`
}

// ComputeTargetUptime aggregates uptime statistics per target from
// executed check runs.
func ComputeTargetUptime(results []models.CheckResult) []TargetUptime {
	type acc struct {
		name     string
		passing  int
		failing  int
		lastTime time.Time
	}
	state := make(map[string]*acc)
	for _, result := range results {
		target := state[result.TargetID]
		if target == nil {
			target = &acc{name: result.TargetName}
			state[result.TargetID] = target
		}
		if result.OK {
			target.passing++
		} else {
			target.failing++
		}
		if result.StartedAt.After(target.lastTime) {
			target.lastTime = result.StartedAt
		}
	}
	if len(state) == 0 {
		return nil
	}

	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summaries := make([]TargetUptime, 0, len(keys))
	for _, id := range keys {
		data := state[id]
		total := data.passing + data.failing
		uptime := 0.0
		if total > 0 {
			uptime = float64(data.passing) / float64(total) * 100
		}

		summary := TargetUptime{
			ID:            id,
			Name:          data.name,
			UptimePercent: round2(uptime),
			TotalRuns:     total,
			Passing:       data.passing,
			Failing:       data.failing,
		}
		if !data.lastTime.IsZero() {
			summary.LastChecked = data.lastTime.UTC().Format(time.RFC3339)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
