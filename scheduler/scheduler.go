// Package scheduler drives the periodic recheck batches: one pass
// immediately on start, then at the 09:00 and 21:00 local anchors.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/raushankrgupta/price-watcher/tracker"
)

const checkPeriod = 12 * time.Hour

// NextCheckDelay returns how long to wait until the next anchor time.
// Before today's morning anchor it targets 09:00, before the evening
// anchor 21:00, otherwise tomorrow's 09:00.
func NextCheckDelay(now time.Time) time.Duration {
	morning := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	evening := time.Date(now.Year(), now.Month(), now.Day(), 21, 0, 0, 0, now.Location())

	switch {
	case now.Before(morning):
		return morning.Sub(now)
	case now.Before(evening):
		return evening.Sub(now)
	default:
		return morning.AddDate(0, 0, 1).Sub(now)
	}
}

// Run blocks until ctx is cancelled, running a full recheck batch
// immediately and then on every anchor.
func Run(ctx context.Context, driver *tracker.Driver) {
	log.Println("scheduler: started, running initial batch")
	driver.CheckAll(ctx)

	delay := NextCheckDelay(time.Now())
	log.Printf("scheduler: next batch in %v", delay.Round(time.Minute))
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: stopping due to context cancelled")
			return
		case <-timer.C:
			driver.CheckAll(ctx)
			timer.Reset(checkPeriod)
			log.Printf("scheduler: next batch in %v", checkPeriod)
		}
	}
}
