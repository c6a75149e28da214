package analytics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically drops visitor rows past the retention window.
type Janitor struct {
	store     *Store
	retention time.Duration
	cron      *cron.Cron
	startup   sync.WaitGroup
}

func NewJanitor(store *Store, schedule string, retention time.Duration) (*Janitor, error) {
	j := &Janitor{
		store:     store,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
	}
	if _, err := j.cron.AddFunc(schedule, j.RunOnce); err != nil {
		return nil, fmt.Errorf("schedule visitor cleanup %q: %w", schedule, err)
	}
	return j, nil
}

// Start runs one cleanup in the background and then follows the schedule.
func (j *Janitor) Start() {
	j.startup.Add(1)
	go func() {
		defer j.startup.Done()
		j.RunOnce()
	}()
	j.cron.Start()
	log.Printf("Visitor cleanup scheduled (retention %s)", j.retention)
}

// Stop waits for any running cleanup, scheduled or initial, to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.startup.Wait()
}

func (j *Janitor) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := j.store.CleanupVisitors(ctx, j.retention); err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
	}
}
