package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"bungalowpark/internal/config"
	"bungalowpark/internal/database"
	"bungalowpark/internal/logger"
	"bungalowpark/internal/modules/activity"
	"bungalowpark/internal/modules/reservation"
	"bungalowpark/internal/modules/settings"
	"bungalowpark/internal/repository"
)

// One-shot sweep of pending reservations whose confirmation window lapsed.
// Useful when the API process is not running, or from an external cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.IsProd())
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}

	reservationRepo := repository.NewReservationRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	activityService := activity.NewService(repository.NewActivityLogRepository(db), zlog)
	settingsService := settings.NewService(settingRepo, activityService, cfg.ConfirmationTTL())

	svc := reservation.NewService(
		reservationRepo,
		repository.NewBungalowRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewExtraServiceRepository(db),
		settingsService,
		activityService,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := svc.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		zlog.Fatal("expiry sweep failed", zap.Error(err))
	}
	zlog.Info("expiry sweep finished", zap.Int("expired", expired))
}
