package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bungalowpark/internal/config"
	"bungalowpark/internal/database"
	"bungalowpark/internal/logger"
	"bungalowpark/internal/middleware"
	"bungalowpark/internal/modules/activity"
	"bungalowpark/internal/modules/catalog"
	"bungalowpark/internal/modules/content"
	"bungalowpark/internal/modules/customer"
	"bungalowpark/internal/modules/report"
	"bungalowpark/internal/modules/reservation"
	"bungalowpark/internal/modules/settings"
	"bungalowpark/internal/pkg/response"
	"bungalowpark/internal/pkg/token"
	"bungalowpark/internal/repository"
	"bungalowpark/internal/scheduler"
)

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
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	reservationRepo := repository.NewReservationRepository(db)
	bungalowRepo := repository.NewBungalowRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewExtraServiceRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	templateRepo := repository.NewEmailTemplateRepository(db)
	termsRepo := repository.NewTermsRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := activity.NewService(activityRepo, zlog)

	settingsService := settings.NewService(settingRepo, activityService, cfg.ConfirmationTTL())
	if err := settingsService.EnsureDefaults(context.Background(), cfg.ConfirmationHours); err != nil {
		zlog.Fatal("settings bootstrap failed", zap.Error(err))
	}

	reservationService := reservation.NewService(
		reservationRepo,
		bungalowRepo,
		customerRepo,
		serviceRepo,
		settingsService,
		activityService,
	)
	catalogService := catalog.NewService(bungalowRepo, serviceRepo, activityService)
	customerService := customer.NewService(customerRepo, activityService)
	contentService := content.NewService(templateRepo, termsRepo, activityService)
	reportService := report.NewService(reservationRepo, bungalowRepo)

	reservationHandler := reservation.NewHandler(reservationService)
	catalogHandler := catalog.NewHandler(catalogService)
	customerHandler := customer.NewHandler(customerService)
	settingsHandler := settings.NewHandler(settingsService)
	contentHandler := content.NewHandler(contentService)
	reportHandler := report.NewHandler(reportService)
	activityHandler := activity.NewHandler(activityService)

	tokens := token.New(cfg.TokenSecret, 24*time.Hour)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public: guest confirmation flow and terms text
		reservationHandler.RegisterPublicRoutes(v1)
		contentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Actor(tokens))
		{
			reservationHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			customerHandler.RegisterRoutes(protected)
			settingsHandler.RegisterRoutes(protected)
			contentHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)
		}
	}

	sched := scheduler.New(reservationService, zlog)
	if err := sched.Start(cfg.ExpiryCron); err != nil {
		zlog.Fatal("scheduler start failed", zap.Error(err))
	}
	defer sched.Stop()

	zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
