package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/specialprice-service/internal/config"
	"github.com/light-bringer/specialprice-service/internal/pkg/logger"
	"github.com/light-bringer/specialprice-service/internal/services"
	grpcpricing "github.com/light-bringer/specialprice-service/internal/transport/grpc/pricing"
	httphandler "github.com/light-bringer/specialprice-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	log.Info().
		Str("env", cfg.Env).
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Int("grpc_port", cfg.GRPCPort).
		Msg("starting special price service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. gRPC server with health and reflection
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcpricing.UnaryLogger(), grpcpricing.UnaryRecovery()))
	grpcpricing.RegisterSpecialPriceServiceServer(grpcServer, grpcpricing.NewHandler(
		serviceOpts.UpsertSpecialPrice,
		serviceOpts.ListSpecialPrices,
		serviceOpts.ResolveProducts,
	))

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(grpcpricing.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	go func() {
		log.Info().Int("port", cfg.GRPCPort).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server error")
		}
	}()

	// 4. HTTP server
	handler := httphandler.NewHandler(
		serviceOpts.UpsertSpecialPrice,
		serviceOpts.ListProducts,
		serviceOpts.GetProduct,
		serviceOpts.ListSpecialPrices,
		serviceOpts.Clock,
		serviceOpts.Backend.Ping,
		serviceOpts.Backend.Driver,
	)
	router := httphandler.NewRouter(handler, httphandler.RouterOptions{
		Production:         cfg.IsProduction(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down gracefully")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	grpcServer.GracefulStop()
	return nil
}
