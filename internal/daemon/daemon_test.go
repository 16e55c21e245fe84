package daemon

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

var discard = log.NewStdLogger(io.Discard)

func staticSource(context.Context) (profile.Answers, error) {
	return profile.Answers{profile.KeyProductType: 2}, nil
}

func okResponse() *energyv1.EvaluateResponse {
	return &energyv1.EvaluateResponse{UUID: "u", Report: &report.Report{Category: "Workstations"}}
}

func fastBackoff(t *testing.T) {
	t.Helper()
	base, ceiling := baseBackoff, maxBackoff
	baseBackoff, maxBackoff = time.Millisecond, 4*time.Millisecond
	t.Cleanup(func() { baseBackoff, maxBackoff = base, ceiling })
}

func TestRunMaxRuns(t *testing.T) {
	calls := 0
	submit := func(context.Context, profile.Answers) (*energyv1.EvaluateResponse, error) {
		calls++
		return okResponse(), nil
	}
	err := Run(context.Background(), Config{Interval: time.Millisecond, MaxRuns: 3}, staticSource, submit, discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 3 {
		t.Errorf("submissions = %d, want 3", calls)
	}
}

func TestRunRetriesFailures(t *testing.T) {
	fastBackoff(t)
	calls := 0
	submit := func(context.Context, profile.Answers) (*energyv1.EvaluateResponse, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return okResponse(), nil
	}
	err := Run(context.Background(), Config{Interval: time.Hour, MaxRuns: 1}, staticSource, submit, discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 3 {
		t.Errorf("submissions = %d, want 3", calls)
	}
}

func TestRunStopsOnInvalidProfile(t *testing.T) {
	source := func(context.Context) (profile.Answers, error) {
		return nil, &profile.ValidationError{}
	}
	submit := func(context.Context, profile.Answers) (*energyv1.EvaluateResponse, error) {
		t.Fatal("submit must not be called")
		return nil, nil
	}
	err := Run(context.Background(), Config{Interval: time.Millisecond}, source, submit, discard)
	if !errors.Is(err, profile.ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}

func TestRunStopsOnRefusedSubmission(t *testing.T) {
	fastBackoff(t)
	for _, code := range []codes.Code{codes.FailedPrecondition, codes.InvalidArgument, codes.Unauthenticated} {
		t.Run(code.String(), func(t *testing.T) {
			calls := 0
			submit := func(context.Context, profile.Answers) (*energyv1.EvaluateResponse, error) {
				calls++
				return nil, status.Error(code, "refused")
			}
			err := Run(context.Background(), Config{Interval: time.Millisecond}, staticSource, submit, discard)
			if status.Code(err) != code {
				t.Errorf("err = %v, want code %s", err, code)
			}
			if calls != 1 {
				t.Errorf("submissions = %d, want 1", calls)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	submit := func(context.Context, profile.Answers) (*energyv1.EvaluateResponse, error) {
		cancel()
		return okResponse(), nil
	}
	if err := Run(ctx, Config{Interval: time.Hour}, staticSource, submit, discard); err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestRunRejectsInterval(t *testing.T) {
	if err := Run(context.Background(), Config{}, staticSource, nil, discard); err == nil {
		t.Error("expected an error for a zero interval")
	}
}

func TestCalcBackoff(t *testing.T) {
	if d := calcBackoff(1); d != baseBackoff {
		t.Errorf("first backoff = %s", d)
	}
	if d := calcBackoff(3); d != 4*baseBackoff {
		t.Errorf("third backoff = %s", d)
	}
	if d := calcBackoff(30); d != maxBackoff {
		t.Errorf("capped backoff = %s", d)
	}
}
