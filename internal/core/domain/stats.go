package domain

import "time"

const day = 24 * time.Hour

// ComputeStats counts the start day as day one, so DaysRunning is never zero.
func ComputeStats(start, now time.Time, sent int64) Stats {
	days := int64(now.Sub(start)/day) + 1
	if days < 1 {
		days = 1
	}

	return Stats{
		DaysRunning: days,
		Sent:        sent,
		Average:     sent / days,
	}
}
