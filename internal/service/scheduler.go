package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler runs the provider price refresh on a cron schedule.
// A typical schedule is "0 18 * * 1-5": weekdays after market close.
type RefreshScheduler struct {
	cron            *cron.Cron
	securityService *SecurityService
}

// NewRefreshScheduler creates a scheduler that sweeps all securities with a
// ticker symbol on the given cron schedule.
func NewRefreshScheduler(securityService *SecurityService, schedule string) (*RefreshScheduler, error) {
	s := &RefreshScheduler{
		cron:            cron.New(),
		securityService: securityService,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start begins running the schedule in its own goroutine.
func (s *RefreshScheduler) Start() {
	s.cron.Start()
}

// Stop cancels the schedule and waits for a running sweep to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *RefreshScheduler) run() {
	results, err := s.securityService.RefreshAll(context.Background())
	if err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
		return
	}

	inserted := 0
	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
			log.Printf("scheduled refresh for %s failed: %s", result.Symbol, result.Error)
			continue
		}
		inserted += result.NewPrices
	}

	log.Printf("scheduled price refresh: %d securities, %d new prices, %d failures",
		len(results), inserted, failed)
}
