// Package daemon re-evaluates the local machine on a schedule and submits
// each profile to the evaluation daemon.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/sender"
)

// Config holds agent-mode configuration.
type Config struct {
	Interval time.Duration
	// MaxRuns stops the agent after that many successful submissions.
	// Zero runs until the context is cancelled.
	MaxRuns int
}

// Source produces the answers to submit, typically by rebuilding the
// profile from cached answers and fresh probes.
type Source func(ctx context.Context) (profile.Answers, error)

// Submit sends answers to the evaluation daemon.
type Submit func(ctx context.Context, answers profile.Answers) (*energyv1.EvaluateResponse, error)

var (
	baseBackoff = 1 * time.Second
	maxBackoff  = 2 * time.Minute
)

// Run submits a profile immediately and then once per interval. Failed
// rounds are retried with exponential backoff instead of waiting a full
// interval. A profile that fails validation locally, or a submission the
// daemon refuses outright, ends the agent.
func Run(ctx context.Context, cfg Config, source Source, submit Submit, logger log.Logger) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	l := log.NewHelper(log.With(logger, "module", "daemon"))

	attempt, runs := 0, 0
	for {
		wait := cfg.Interval
		resp, err := round(ctx, source, submit)
		switch {
		case ctx.Err() != nil:
			l.Info("agent shutting down")
			return nil
		case errors.Is(err, profile.ErrInvalidProfile):
			return err
		case sender.Permanent(err):
			l.Errorf("daemon refused the submission: %v", err)
			return err
		case err != nil:
			attempt++
			wait = calcBackoff(attempt)
			l.Warnf("submission failed (attempt %d): %v; retrying in %s", attempt, err, wait)
		default:
			attempt = 0
			runs++
			sum := resp.Report.Summary()
			l.Infow("msg", "profile submitted", "uuid", resp.UUID, "passed", sum.Passed, "failed", sum.Failed)
			if cfg.MaxRuns > 0 && runs >= cfg.MaxRuns {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			l.Info("agent shutting down")
			return nil
		case <-time.After(wait):
		}
	}
}

func round(ctx context.Context, source Source, submit Submit) (*energyv1.EvaluateResponse, error) {
	answers, err := source(ctx)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	resp, err := submit(ctx, answers)
	if err != nil {
		return nil, err
	}
	if resp.Report == nil {
		return nil, errors.New("daemon returned no report")
	}
	return resp, nil
}

func calcBackoff(attempt int) time.Duration {
	d := baseBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}
