package sender

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

type fakeService struct {
	energyv1.UnimplementedComplianceServiceServer
	calls  atomic.Int32
	errs   []error
	secret atomic.Value
	stored atomic.Bool
}

func (f *fakeService) Evaluate(ctx context.Context, req *energyv1.EvaluateRequest) (*energyv1.EvaluateResponse, error) {
	n := int(f.calls.Add(1))
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-client-secret"); len(v) > 0 {
			f.secret.Store(v[0])
		}
	}
	f.stored.Store(req.Store)
	if n <= len(f.errs) {
		return nil, f.errs[n-1]
	}
	return &energyv1.EvaluateResponse{
		UUID:   "uuid-1",
		Report: &report.Report{Category: "Workstations"},
	}, nil
}

func startFake(t *testing.T, f *fakeService) Option {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	energyv1.RegisterComplianceServiceServer(srv, f)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	return WithDialOptions(
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}

func answers() profile.Answers {
	return profile.Answers{profile.KeyProductType: 2}
}

func TestSend(t *testing.T) {
	f := &fakeService{}
	resp, err := Send(context.Background(), "passthrough:///bufnet", "agent-secret", answers(), startFake(t, f), WithStore(true))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.UUID != "uuid-1" || resp.Report.Category != "Workstations" {
		t.Errorf("response = %+v", resp)
	}
	if got, _ := f.secret.Load().(string); got != "agent-secret" {
		t.Errorf("secret = %q", got)
	}
	if !f.stored.Load() {
		t.Error("store flag not forwarded")
	}
}

func TestSendRetriesUnavailable(t *testing.T) {
	f := &fakeService{errs: []error{
		status.Error(codes.Unavailable, "warming up"),
		status.Error(codes.Unavailable, "warming up"),
	}}
	_, err := Send(context.Background(), "passthrough:///bufnet", "", answers(), startFake(t, f), WithBackoff(time.Millisecond))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if n := f.calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestSendGivesUp(t *testing.T) {
	f := &fakeService{errs: []error{
		status.Error(codes.Unavailable, "down"),
		status.Error(codes.Unavailable, "down"),
		status.Error(codes.Unavailable, "down"),
		status.Error(codes.Unavailable, "down"),
	}}
	_, err := Send(context.Background(), "passthrough:///bufnet", "", answers(), startFake(t, f), WithBackoff(time.Millisecond))
	if status.Code(err) != codes.Unavailable {
		t.Errorf("err = %v, want Unavailable", err)
	}
	if n := f.calls.Load(); n != maxRetries {
		t.Errorf("calls = %d, want %d", n, maxRetries)
	}
}

func TestSendDoesNotRetryRejectedProfile(t *testing.T) {
	f := &fakeService{errs: []error{status.Error(codes.InvalidArgument, "Off Mode is required")}}
	_, err := Send(context.Background(), "passthrough:///bufnet", "", answers(), startFake(t, f), WithBackoff(time.Millisecond))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("err = %v, want InvalidArgument", err)
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		code codes.Code
		want bool
	}{
		{codes.Unavailable, true},
		{codes.DeadlineExceeded, true},
		{codes.Internal, true},
		{codes.InvalidArgument, false},
		{codes.FailedPrecondition, false},
		{codes.Unauthenticated, false},
	}
	for _, tt := range tests {
		if got := retryable(status.Error(tt.code, "x")); got != tt.want {
			t.Errorf("retryable(%s) = %v, want %v", tt.code, got, tt.want)
		}
		if got := Permanent(status.Error(tt.code, "x")); got == tt.want {
			t.Errorf("Permanent(%s) = %v, want %v", tt.code, got, !tt.want)
		}
	}
	if Permanent(nil) {
		t.Error("Permanent(nil) = true")
	}
}
