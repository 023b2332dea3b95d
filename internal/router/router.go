// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/handlers"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/middleware"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/services"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/storage"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	PDF          *services.PDFService
	Reservations *services.ReservationService
	Referrals    *services.ReferralService
	DB           handlers.Pinger
}

// NewServices wires the gorm-backed stores into the services.
func NewServices(db *gorm.DB, cfg *config.Config, assets storage.AssetStore) (*Services, error) {
	pdfs := repository.NewGormStore[models.PDF](db)
	reservations := repository.NewGormStore[models.Reservation](db)
	logs := repository.NewGormStore[models.ReferralProfitLog](db)
	tx := repository.NewGormTransactor(db)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &Services{
		PDF:          services.NewPDFService(pdfs, assets, cfg.Upload.MaxSizeMB),
		Reservations: services.NewReservationService(reservations, tx),
		Referrals:    services.NewReferralService(reservations, logs, tx, cfg.Referral),
		DB:           sqlDB,
	}, nil
}

// New builds the engine. Rate limiter sweeps stop when done is closed.
func New(svc *Services, cfg *config.Config, done <-chan struct{}) *gin.Engine {
	// Initialize handlers
	pdfHandler := handlers.NewPDFHandler(svc.PDF)
	reservationHandler := handlers.NewReservationHandler(svc.Reservations, svc.Referrals, cfg.JWT.AdminRole)
	referralHandler := handlers.NewReferralHandler(svc.Referrals)
	healthHandler := handlers.NewHealthHandler(svc.DB)

	limiters := middleware.NewLimiters(cfg.Upload)
	limiters.Run(done)

	authRequired := middleware.AuthRequired(cfg.JWT.SecretKey)
	adminRequired := middleware.AdminRequired(cfg.JWT.SecretKey, cfg.JWT.AdminRole)
	uploadLimit := limiters.Upload.Middleware()

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(limiters.General.Middleware())
	{
		pdfs := v1.Group("/pdfs")
		{
			pdfs.GET("", utils.Handle(pdfHandler.GetAllPDFs))
			pdfs.GET("/:id", utils.Handle(pdfHandler.GetPDFByID))

			// Admin routes
			protected := pdfs.Group("")
			protected.Use(authRequired, adminRequired)
			{
				protected.POST("", uploadLimit, utils.Handle(pdfHandler.UploadPDF))
				protected.PUT("/:id", uploadLimit, utils.Handle(pdfHandler.UpdatePDF))
				protected.DELETE("/:id", utils.Handle(pdfHandler.DeletePDF))
			}
		}

		reservations := v1.Group("/reservations")
		reservations.Use(authRequired)
		{
			reservations.POST("", utils.Handle(reservationHandler.CreateReservation))
			reservations.GET("", utils.Handle(reservationHandler.GetReservations))
			reservations.GET("/:id", utils.Handle(reservationHandler.GetReservation))

			// Admin routes
			admin := reservations.Group("")
			admin.Use(adminRequired)
			{
				admin.POST("/:id/buy", utils.Handle(reservationHandler.MarkBought))
				admin.POST("/:id/sell", utils.Handle(reservationHandler.MarkSold))
				admin.POST("/:id/distribute", utils.Handle(reservationHandler.DistributeProfit))
				admin.DELETE("/:id", utils.Handle(reservationHandler.DeleteReservation))
			}
		}

		referrals := v1.Group("/referral-profits")
		referrals.Use(authRequired)
		{
			referrals.GET("", utils.Handle(referralHandler.GetReferralProfits))
			referrals.GET("/:id", utils.Handle(referralHandler.GetReferralProfit))
		}
	}

	return r
}
