package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/panorama-auth/internal/api/grpc/context"
	"github.com/dtroode/panorama-auth/internal/api/grpc/router"
	grpcServer "github.com/dtroode/panorama-auth/internal/api/grpc/server"
	"github.com/dtroode/panorama-auth/internal/config"
	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/metrics"
	"github.com/dtroode/panorama-auth/internal/model"
	"github.com/dtroode/panorama-auth/internal/password"
	"github.com/dtroode/panorama-auth/internal/repository/memory"
	"github.com/dtroode/panorama-auth/internal/repository/postgres"
	"github.com/dtroode/panorama-auth/internal/server"
	"github.com/dtroode/panorama-auth/internal/service"
	"github.com/dtroode/panorama-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	userStore, refreshTokenStore, closeStores, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer closeStores()

	hasher, err := password.NewBcrypt(cfg.Password.Cost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	tokenManager, err := token.NewJWT(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	m := metrics.New()
	sessionService := service.NewSession(
		userStore,
		refreshTokenStore,
		tokenManager,
		hasher,
		m,
		logger.Component("session"),
		cfg.Auth.AllowSuperAdminSignup,
	)

	r := router.New(sessionService, grpcctx.NewManager(), logger.Component("grpc"))
	gs := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	sl := server.NewSecurityLayer(cfg.GRPC)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server on", "address", gs.Address())
		return startServer(gs, sl)
	})

	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("Starting metrics server on", "address", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := gs.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", gs.Address())
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("error during metrics server shutdown", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return
	}
	logger.Info("shutdown complete")
}

func startServer(s model.Server, sl model.SecurityLayer) error {
	if err := s.Start(sl); err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg config.Database) (model.UserStore, model.RefreshTokenStore, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewUserRepository(), memory.NewRefreshTokenRepository(), func() {}, nil
	default:
		db, err := postgres.NewConection(ctx, cfg.DSN, postgres.PoolConfig{
			MaxConns:       cfg.MaxConns,
			MinConns:       cfg.MinConns,
			ConnectTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewUserRepository(db), postgres.NewRefreshTokenRepository(db), func() { _ = db.Close() }, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
