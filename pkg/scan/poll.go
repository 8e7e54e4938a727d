package scan

import (
	"context"
	"time"

	"github.com/Abraxas-365/inkwell/pkg/errx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/ocr"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 60
)

// SleepFunc waits for d or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poller waits for an OCR job to reach a terminal state by re-querying the
// provider on a fixed interval. The provider owns the state; the poller
// never caches or advances it locally.
type Poller struct {
	interval    time.Duration
	maxAttempts int
	sleep       SleepFunc
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithSleepFunc overrides the inter-attempt wait
func WithSleepFunc(fn SleepFunc) PollerOption {
	return func(p *Poller) {
		p.sleep = fn
	}
}

// NewPoller creates a Poller. Non-positive interval or attempts fall back
// to the defaults.
func NewPoller(interval time.Duration, maxAttempts int, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPollAttempts
	}

	p := &Poller{
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleepWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Wait polls the provider until the job is processed, the job fails, or
// the attempt budget runs out. A transient status-check error does not end
// the wait; it consumes an attempt like any other poll.
func (p *Poller) Wait(ctx context.Context, provider ocr.Provider, job ocr.Job) *errx.Error {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status, err := provider.GetStatus(ctx, job)
		if err != nil {
			logx.WithError(err).WithFields(logx.Fields{
				"job_id":  job.ID,
				"attempt": attempt,
			}).Warn("status check failed, will retry")
		} else {
			switch status {
			case ocr.StatusProcessed:
				return nil
			case ocr.StatusFailed:
				return scanErrors.New(ErrJobFailed).
					WithDetail("job_id", job.ID).
					WithDetail("provider_job_id", job.ProviderJobID)
			}
		}

		if attempt == p.maxAttempts {
			break
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return errx.Wrap(err, "polling cancelled", errx.TypeInternal)
		}
	}

	return scanErrors.New(ErrPollTimeout).
		WithDetail("job_id", job.ID).
		WithDetail("attempts", p.maxAttempts)
}
