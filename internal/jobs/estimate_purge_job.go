package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EstimatePurgeJobName is the name of the expired estimate purge job
const EstimatePurgeJobName = "estimate_purge"

// DefaultEstimatePurgeTimeout bounds a single purge run when none is configured
const DefaultEstimatePurgeTimeout = 5 * time.Minute

// EstimatePurger deletes expired estimates and reports how many were removed.
type EstimatePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// EstimatePurgeJob removes expired estimates and their cached prints.
type EstimatePurgeJob struct {
	purger  EstimatePurger
	logger  *zap.Logger
	timeout time.Duration
}

// NewEstimatePurgeJob creates a new purge job. The timeout controls how
// long a single run may take.
func NewEstimatePurgeJob(purger EstimatePurger, logger *zap.Logger, timeout time.Duration) *EstimatePurgeJob {
	if timeout <= 0 {
		timeout = DefaultEstimatePurgeTimeout
	}
	return &EstimatePurgeJob{
		purger:  purger,
		logger:  logger.With(zap.String("job_name", EstimatePurgeJobName)),
		timeout: timeout,
	}
}

// Run executes one purge. Failures are logged; the next scheduled run
// retries.
func (j *EstimatePurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	deleted, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("estimate purge failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("estimate purge completed",
		zap.Int64("deleted", deleted),
		zap.Duration("duration", time.Since(start)))
}

// RegisterEstimatePurgeJob registers the purge job with the scheduler. When
// runOnStartup is set the first purge starts immediately in the background
// so it does not block API startup.
func RegisterEstimatePurgeJob(scheduler *Scheduler, purger EstimatePurger, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) error {
	job := NewEstimatePurgeJob(purger, logger, timeout)
	if err := scheduler.AddJob(EstimatePurgeJobName, cronExpr, job.Run); err != nil {
		return err
	}
	if runOnStartup {
		return scheduler.RunNow(EstimatePurgeJobName)
	}
	return nil
}
