package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher re-runs a task on a fixed interval with an explicit stop
// handle. Overlapping runs are not deduplicated; the task itself is
// expected to be cheap when nothing changed (the feed cache suppresses
// redundant network calls within its TTL).
type Refresher struct {
	cron *cron.Cron
	task func()
}

// NewRefresher registers task to run every interval. The schedule does
// not fire until Start is called.
func NewRefresher(interval time.Duration, task func()) (*Refresher, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), task); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	return &Refresher{cron: c, task: task}, nil
}

// Start begins the schedule.
func (r *Refresher) Start() {
	r.cron.Start()
	log.Println("feed refresher started")
}

// Stop cancels the schedule and waits for any in-flight run to finish.
// After Stop returns, no further runs will be started.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Println("feed refresher stopped")
}

// RunNow executes the task immediately, outside the schedule. Used for
// the initial load at startup.
func (r *Refresher) RunNow() {
	r.task()
}
