package server

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
)

// allowedClientSecretMethods lists the RPCs that client-secret callers may
// invoke.
var allowedClientSecretMethods = map[string]bool{
	energyv1.ComplianceService_Evaluate_FullMethodName:      true,
	energyv1.ComplianceService_GetEvaluation_FullMethodName: true,
}

// ClientSecretInterceptor returns a gRPC unary server interceptor that
// validates the x-client-secret metadata header. An empty secret disables
// authentication.
func ClientSecretInterceptor(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if secret == "" {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		vals := md.Get("x-client-secret")
		if len(vals) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing x-client-secret")
		}

		if subtle.ConstantTimeCompare([]byte(vals[0]), []byte(secret)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid x-client-secret")
		}

		if !allowedClientSecretMethods[info.FullMethod] {
			return nil, status.Error(codes.PermissionDenied, "client-secret not permitted for this method")
		}

		return handler(ctx, req)
	}
}
