package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"
	"google.golang.org/grpc"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	_ "github.com/go-tangra/go-tangra-energy/internal/codec"
	"github.com/go-tangra/go-tangra-energy/internal/config"
	"github.com/go-tangra/go-tangra-energy/internal/estar"
	"github.com/go-tangra/go-tangra-energy/internal/store"
)

// NewGRPCServer returns a gRPC server exposing ComplianceService behind the
// client-secret interceptor.
func NewGRPCServer(cfg *config.Config, handler *Handler) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(ClientSecretInterceptor(cfg.ClientSecret)),
	)
	energyv1.RegisterComplianceServiceServer(srv, handler)
	return srv
}

// NewHTTPServer returns the REST server with API-secret middleware and,
// when enabled, the Swagger UI.
func NewHTTPServer(cfg *config.Config, handler *Handler, logger log.Logger, openApiData []byte, opts ...kratoshttp.ServerOption) *kratoshttp.Server {
	opts = append([]kratoshttp.ServerOption{
		kratoshttp.Address(cfg.HTTPListen),
		kratoshttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			ApiSecretMiddleware(cfg.ApiSecret),
		),
	}, opts...)
	srv := kratoshttp.NewServer(opts...)
	energyv1.RegisterComplianceServiceHTTPServer(srv, handler)

	if cfg.EnableSwagger && len(openApiData) > 0 {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			srv,
			swaggerUI.WithTitle("Energy Star Compliance"),
			swaggerUI.WithMemoryData(openApiData, "yaml"),
		)
	}
	return srv
}

// Run starts the gRPC and HTTP servers and blocks until the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, openApiData []byte, logger log.Logger) error {
	l := log.NewHelper(log.With(logger, "module", "server"))

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	handler := NewHandler(db, estar.New(estar.WithLogger(logger)), logger)

	grpcSrv := NewGRPCServer(cfg, handler)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen gRPC on %s: %w", cfg.Listen, err)
	}

	go func() {
		<-ctx.Done()
		l.Info("shutting down")
		grpcSrv.GracefulStop()
	}()

	if cfg.RetentionDays > 0 {
		go runPurgeLoop(ctx, db, cfg.RetentionDays, cfg.PurgeInterval, l)
	}

	httpSrv := NewHTTPServer(cfg, handler, logger, openApiData)
	if cfg.EnableSwagger && len(openApiData) > 0 {
		l.Infof("Swagger UI available at http://%s/docs/", cfg.HTTPListen)
	}

	go func() {
		if err := httpSrv.Start(ctx); err != nil {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		_ = httpSrv.Stop(context.Background())
	}()

	l.Infof("compliance service gRPC listening on %s, HTTP on %s (db: %s)", cfg.Listen, cfg.HTTPListen, cfg.DatabasePath)
	if cfg.RetentionDays > 0 {
		l.Infof("retention: %d days, purge interval: %s", cfg.RetentionDays, cfg.PurgeInterval)
	}

	return grpcSrv.Serve(lis)
}

func runPurgeLoop(ctx context.Context, db *store.Store, retentionDays int, interval time.Duration, l *log.Helper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeOnce(ctx, db, retentionDays, l)
		}
	}
}

func purgeOnce(ctx context.Context, db *store.Store, retentionDays int, l *log.Helper) {
	olderThan := time.Duration(retentionDays) * 24 * time.Hour
	n, err := db.Purge(ctx, olderThan)
	if err != nil {
		l.Errorf("purge error: %v", err)
	} else if n > 0 {
		l.Infof("purged %d evaluations older than %d days", n, retentionDays)
	}
}
