package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/audit"
	"github.com/Aaryan658/proof-of-life/internal/challenge"
	"github.com/Aaryan658/proof-of-life/internal/clock"
	"github.com/Aaryan658/proof-of-life/internal/config"
	httpHandler "github.com/Aaryan658/proof-of-life/internal/handler/http"
	"github.com/Aaryan658/proof-of-life/internal/orchestrator"
	"github.com/Aaryan658/proof-of-life/internal/repository/memory"
	"github.com/Aaryan658/proof-of-life/internal/repository/postgres"
	"github.com/Aaryan658/proof-of-life/internal/telemetry"
	"github.com/Aaryan658/proof-of-life/internal/temporal"
	"github.com/Aaryan658/proof-of-life/internal/token"
	"github.com/Aaryan658/proof-of-life/internal/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := telemetry.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	challengeStore, tokenStore, auditStore, closeStores := setupStores(cfg, logger)
	defer closeStores()

	clk := clock.System{}

	extractor := vision.NewExtractor(vision.UnavailableModel{}, cfg.Vision.ExtractionWorkers)
	defer extractor.Close()
	detectors := vision.NewDetectorSet(cfg.Vision)
	analyzer := temporal.NewAnalyzer(cfg.Verify.MinFrames, cfg.Vision.MinConsecutiveFrames)

	tokenService := token.NewService(tokenStore, clk, cfg.JWT.Secret, cfg.JWT.Issuer)

	orch := orchestrator.New(challengeStore, tokenService, auditStore, extractor, detectors, analyzer, clk, cfg, logger)

	stopSweep := startChallengeSweeper(challengeStore, cfg, clk, logger)
	defer stopSweep()

	router := httpHandler.SetupRouter(orch, tokenService, cfg.CORS.AllowedOrigin, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting http server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("http server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited properly")
}

// setupStores builds the challenge, token, and audit stores for the
// configured backend, returning a cleanup func that releases whatever
// connection the backend opened.
func setupStores(cfg *config.Config, logger *zap.Logger) (challenge.Store, token.Store, audit.Store, func()) {
	if cfg.Database.Backend == "memory" {
		logger.Info("using in-memory storage backend")
		return memory.NewChallengeStore(), memory.NewTokenStore(), memory.NewAuditStore(), func() {}
	}

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations")
		if err := postgres.RunMigrations(cfg.Database); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	pool, err := postgres.NewPool(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize postgres pool", zap.Error(err))
	}

	return postgres.NewChallengeStore(pool), postgres.NewTokenStore(pool), postgres.NewAuditStore(pool), pool.Close
}

// startChallengeSweeper periodically deletes challenges whose expiry plus
// grace period has passed. Best-effort background maintenance, not on the
// request path (spec.md §4.4).
func startChallengeSweeper(store challenge.Store, cfg *config.Config, clk clock.Clock, logger *zap.Logger) func() {
	ticker := time.NewTicker(cfg.Challenge.Expiry())
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				n, err := store.Sweep(ctx, clk.Now(), cfg.Challenge.Grace())
				cancel()
				if err != nil {
					logger.Warn("challenge sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Info("swept expired challenges", zap.Int64("count", n))
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
