package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telugutor/backend/internal/config"
	"github.com/telugutor/backend/internal/database"
	"github.com/telugutor/backend/internal/handlers"
	"github.com/telugutor/backend/internal/learner"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/internal/middleware"
	"github.com/telugutor/backend/internal/notify"
	"github.com/telugutor/backend/internal/review"
	"github.com/telugutor/backend/internal/scheduler"
	"github.com/telugutor/backend/internal/server"
	"github.com/telugutor/backend/internal/session"
	"github.com/telugutor/backend/internal/skill"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	sessions, err := session.NewStore(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("Failed to connect to redis", "error", err)
	}
	defer sessions.Close()

	// Repositories
	vocabRepo := database.NewVocabularyRepository(db)
	srsRepo := database.NewSRSRepository(db)
	skillRepo := database.NewSkillRepository(db)
	learnerRepo := database.NewLearnerRepository(db)

	// Services
	reviewService := review.NewService(srsRepo, vocabRepo, log)
	skillService := skill.NewService(skillRepo, log)
	learnerService := learner.NewService(learnerRepo, sessions, log)

	// Review reminders
	var notifier scheduler.Notifier = notify.NoopNotifier{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, log)
		if err != nil {
			log.Warn("Telegram notifier disabled", "error", err)
		} else {
			notifier = tg
		}
	}
	reminders := scheduler.New(srsRepo, learnerRepo, notifier, log, cfg.NotificationStartHour, cfg.NotificationEndHour)
	reminders.Start()
	defer reminders.Stop()

	// HTTP
	authMiddleware := middleware.NewAuthMiddleware(log, sessions, cfg.DevLearnerHeader)
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware: authMiddleware,
		ReviewHandler:  handlers.NewReviewHandler(reviewService),
		SkillHandler:   handlers.NewSkillHandler(skillService),
		LearnerHandler: handlers.NewLearnerHandler(learnerService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal, shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown", "error", err)
	}
	log.Info("Server stopped")
}
