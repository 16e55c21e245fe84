package server

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const apiKeyHeader = "X-API-Key"

// requestAPIKey reads the key from X-API-Key, falling back to a bearer
// token in Authorization.
func requestAPIKey(h transport.Header) string {
	if key := h.Get(apiKeyHeader); key != "" {
		return key
	}
	token, ok := strings.CutPrefix(h.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// ApiSecretMiddleware guards the evaluation REST routes with a shared key.
// An empty secret disables the check. Swagger UI is mounted with
// HandlePrefix and is not covered.
func ApiSecretMiddleware(secret string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		if secret == "" {
			return handler
		}
		return func(ctx context.Context, req any) (any, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, status.Error(codes.Internal, "no transport in context")
			}

			key := requestAPIKey(tr.RequestHeader())
			if key == "" {
				return nil, status.Errorf(codes.Unauthenticated, "%s: api key required", tr.Operation())
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				return nil, status.Errorf(codes.Unauthenticated, "%s: api key rejected", tr.Operation())
			}

			return handler(ctx, req)
		}
	}
}
