// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartCloseOutScheduler runs the weekly close-out sweep in the background.
// The sweep is idempotent per league, so the short interval only bounds how
// quickly a finished week is finalized (and catches up after downtime).
func (s *LeagueService) StartCloseOutScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(func() {
			if err := s.CloseOutDueLeagues(time.Now().UTC()); err != nil {
				log.Printf("[Scheduler] close-out sweep error: %v", err)
			}
		}),
	)
}
