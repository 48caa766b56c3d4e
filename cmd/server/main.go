package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"rally/internal/adapters/web"
	"rally/internal/application"
	"rally/internal/config"
	"rally/internal/infrastructure/database"
	"rally/internal/infrastructure/i18n"
	"rally/internal/infrastructure/session"
	"rally/internal/infrastructure/simulation"
	"rally/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected")

	eventRepo := database.NewEventRepository(pool)
	userRepo := database.NewUserRepository(pool)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	var noise output.BallotNoise
	if cfg.SimulatedVoters {
		noise = simulation.NewSimulatedVoters(cfg.SimulatedVotersSeed)
		logger.Warn("simulated voters enabled", zap.Int64("seed", cfg.SimulatedVotersSeed))
	}

	eventUC := application.NewEventService(eventRepo)
	participantUC := application.NewParticipantService(eventRepo)
	votingUC := application.NewVotingService(eventRepo, noise, logger)
	authUC := application.NewAuthService(userRepo, sessions)

	server := web.New(cfg, logger, eventUC, participantUC, votingUC, authUC, sessions, translator)

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.Start(); err != nil {
			logger.Error("http server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
