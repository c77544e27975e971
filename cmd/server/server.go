package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/horror-bot/internal/config"
	"github.com/KirkDiggler/horror-bot/internal/pkg/logger"
	"github.com/KirkDiggler/horror-bot/internal/pkg/telemetry"
	"github.com/KirkDiggler/horror-bot/internal/redis"
)

// workerHealthService is the health entry that tracks the command worker
const workerHealthService = "horror.worker"

const shutdownTimeout = 30 * time.Second

var (
	grpcPort int
	inMemory bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the game server",
	Long: `Start the horror-bot game core: the command worker, the event relay
and a gRPC health endpoint. Settings come from HORROR_* environment variables.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC health port (overrides HORROR_GRPC_PORT)")
	serverCmd.Flags().BoolVar(&inMemory, "memory", false, "keep games in memory instead of SQLite")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}
	log := logger.Setup(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OtelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	redisClient, err := redis.Connect(ctx, cfg.RedisAddr, &redis.Options{PoolSize: 20})
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	a, err := buildApp(ctx, cfg, &appOptions{Redis: redisClient, InMemory: inMemory})
	if err != nil {
		return err
	}
	defer a.Close()

	a.resume(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(log)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(log)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := a.worker.Run(ctx); err != nil {
			slog.Error("worker stopped with error", "error", err)
		}
	}()

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(workerHealthService, grpc_health_v1.HealthCheckResponse_SERVING)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("health server starting", "port", cfg.GRPCPort, "memory", inMemory)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		cancel()
		<-workerDone
		return err
	}

	slog.Info("shutting down")
	healthServer.Shutdown()
	<-workerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("server stopped gracefully")
	}

	return nil
}

// interceptorLogger adapts slog to the go-grpc-middleware logging interface
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
