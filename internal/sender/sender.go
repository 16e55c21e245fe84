package sender

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/codec"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
)

const (
	maxRetries     = 3
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	callTimeout    = 30 * time.Second
)

type options struct {
	dialOpts []grpc.DialOption
	delay    time.Duration
	store    bool
}

// Option configures Send.
type Option func(*options)

// WithDialOptions adds gRPC dial options, replacing the default insecure
// transport credentials when any are given.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dialOpts = append(o.dialOpts, opts...)
	}
}

// WithBackoff sets the initial delay between attempts.
func WithBackoff(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithStore asks the daemon to keep the evaluation in its history.
func WithStore(store bool) Option {
	return func(o *options) {
		o.store = store
	}
}

// retryable reports whether a failed call may succeed on another attempt.
// Rejected profiles and credentials fail the same way every time.
func retryable(err error) bool {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.Unauthenticated, codes.PermissionDenied, codes.NotFound:
		return false
	}
	return true
}

// Permanent reports whether the daemon rejected the call for a reason that
// resubmitting the same profile cannot fix.
func Permanent(err error) bool {
	return err != nil && !retryable(err)
}

// Send connects to the daemon at addr and submits the answers for
// evaluation. When secret is non-empty, it is sent as the x-client-secret
// gRPC metadata header. Transport failures are retried with backoff.
func Send(ctx context.Context, addr, secret string, answers profile.Answers, opts ...Option) (*energyv1.EvaluateResponse, error) {
	o := options{delay: initialBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	if secret != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-client-secret", secret)
	}

	dialOpts := o.dialOpts
	if len(dialOpts) == 0 {
		dialOpts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)))

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}
	defer conn.Close()

	client := energyv1.NewComplianceServiceClient(conn)
	req := &energyv1.EvaluateRequest{Profile: answers, Store: o.store}

	resp, err := retry.DoWithData(func() (*energyv1.EvaluateResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		return client.Evaluate(callCtx, req)
	},
		retry.Context(ctx),
		retry.Attempts(maxRetries),
		retry.Delay(o.delay),
		retry.MaxDelay(maxBackoff),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("submit profile: %w", err)
	}
	return resp, nil
}
