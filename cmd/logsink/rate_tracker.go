package main

import (
	"log"
	"time"
)

// RateTracker tracks records received per second. It is not safe for
// concurrent use; LogServer serializes calls under its own lock.
type RateTracker struct {
	counts         map[int64]int // second-resolution timestamp -> record count
	startTime      time.Time
	total          int
	lastReportTime time.Time
	reportInterval time.Duration
}

func NewRateTracker() *RateTracker {
	return &RateTracker{
		counts:         make(map[int64]int),
		startTime:      time.Now(),
		lastReportTime: time.Now(),
		reportInterval: 5 * time.Second,
	}
}

// Track adds count records to the current second and reports the running
// rates once per report interval.
func (t *RateTracker) Track(count int) {
	now := time.Now()
	t.counts[now.Unix()] += count
	t.total += count

	if now.Sub(t.lastReportTime) >= t.reportInterval {
		log.Printf("Records per second: %.2f (1s) | %.2f (10s) | %.2f (60s) | Total: %d",
			t.Rate(1), t.Rate(10), t.Rate(60), t.total)
		t.lastReportTime = now
	}
}

// Rate returns the average records/second over the last n seconds, or over
// the tracker's lifetime if that is shorter.
func (t *RateTracker) Rate(seconds int) float64 {
	now := time.Now()
	cutoff := now.Add(-time.Duration(seconds) * time.Second).Unix()

	var total int
	for ts, count := range t.counts {
		if ts >= cutoff {
			total += count
		}
	}

	window := int64(seconds)
	elapsed := now.Unix() - t.startTime.Unix()
	if elapsed < window {
		window = elapsed
		if window == 0 {
			window = 1
		}
	}
	return float64(total) / float64(window)
}
