// Package scheduler runs periodic maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

// Sweeper closes postings whose application deadline has passed.
type Sweeper interface {
	CloseExpired(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
	logger  *log.Logger
}

// New builds a scheduler firing on spec, e.g. "@every 1h" or "0 * * * *".
func New(sweeper Sweeper, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cron.VerbosePrintfLogger(logger)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.PrintfLogger(logger))),
		),
		sweeper: sweeper,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the expiry job and runs one sweep immediately in the
// background. Sweeps stop being scheduled once ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule job expiry %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Printf("[Scheduler] started spec=%q", s.spec)

	go s.sweep(ctx)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Printf("[Scheduler] stopped")
}

func (s *Scheduler) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()
	if _, err := s.sweeper.CloseExpired(ctx); err != nil {
		s.logger.Printf("[Scheduler] job expiry failed err=%v", err)
	}
}
