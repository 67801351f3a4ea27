package usecase

import (
	"context"
	"log"
	"time"

	"empedi/internal/metrics"
	"empedi/internal/repository"
)

type JobExpiryUsecase interface {
	CloseExpired(ctx context.Context) (int64, error)
}

// JobExpiry closes active postings whose application deadline has passed so
// they drop out of recommendations.
type JobExpiry struct {
	jobs   repository.JobRepository
	logger *log.Logger
	now    func() time.Time
}

func NewJobExpiryUsecase(jobs repository.JobRepository, logger *log.Logger) *JobExpiry {
	if logger == nil {
		logger = log.Default()
	}
	return &JobExpiry{jobs: jobs, logger: logger, now: time.Now}
}

func (u *JobExpiry) CloseExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := u.jobs.CloseExpired(ctx, u.now().UTC())
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		u.logger.Printf("[JobExpiry] sweep failed err=%v", err)
		return 0, ErrInternal
	}
	if n > 0 {
		metrics.JobsExpired.Add(float64(n))
	}
	u.logger.Printf("[JobExpiry] sweep done closed=%d duration_ms=%d", n, time.Since(start).Milliseconds())
	return n, nil
}
