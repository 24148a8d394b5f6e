package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Destinytch001/naits-server/internal/config"
	"github.com/Destinytch001/naits-server/internal/handler"
	"github.com/Destinytch001/naits-server/internal/middleware"
	"github.com/Destinytch001/naits-server/internal/repository"
	"github.com/Destinytch001/naits-server/internal/service"
	"github.com/Destinytch001/naits-server/internal/token"
	"github.com/Destinytch001/naits-server/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	cron   *cron.Cron
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchSvc := service.NewSearchService(meiliClient)

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	wearRepo := repository.NewWearRepository(db)
	adRepo := repository.NewAdRepository(db)

	presenceSvc := service.NewPresenceService(userRepo, cfg.IdleThreshold, cfg.OfflineThreshold)
	authSvc := service.NewAuthService(userRepo, tokens, redisClient, cfg.SigninLockout)
	userSvc := service.NewUserService(userRepo)
	wearSvc := service.NewWearService(wearRepo, imageStorage, searchSvc)
	adSvc := service.NewAdService(adRepo, imageStorage)

	authHandler := handler.NewAuthHandler(authSvc, presenceSvc)
	userHandler := handler.NewUserHandler(userSvc, authSvc, presenceSvc)
	wearHandler := handler.NewWearHandler(wearSvc)
	adHandler := handler.NewAdHandler(adSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/heartbeat", authMiddleware.RequireAuth(), authHandler.Heartbeat)
	}

	users := api.Group("/users")
	{
		users.GET("", userHandler.GetAllUsers)
		users.GET("/status/:id", authMiddleware.RequireAuth(), userHandler.GetUserStatus)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.POST("/bulk-create", userHandler.BulkCreateUsers)
	}

	wear := api.Group("/faculty-wear")
	{
		wear.GET("", wearHandler.GetAll)
		wear.GET("/search", wearHandler.Search)
		wear.GET("/:id", wearHandler.Get)
		wear.POST("", wearHandler.Create)
		wear.PUT("/:id", wearHandler.Update)
		wear.DELETE("/:id", wearHandler.Delete)
	}

	api.GET("/sponsored-ads", adHandler.GetActive)

	adminAds := api.Group("/admin/sponsored-ads")
	{
		adminAds.POST("", adHandler.Create)
		adminAds.GET("/expired", adHandler.GetExpired)
		adminAds.POST("/:id/extend", adHandler.Extend)
		adminAds.DELETE("/:id", adHandler.Delete)
	}

	sweeper := startSweeps(cfg, presenceSvc, adSvc)

	return &Server{
		engine: router,
		cron:   sweeper,
	}
}

// startSweeps schedules the presence and ad-expiry reconciliation passes.
// Both run outside the request path and swallow their own errors.
func startSweeps(cfg *config.Config, presenceSvc service.PresenceService, adSvc service.AdService) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every "+cfg.StatusSweepInterval.String(), func() {
		presenceSvc.Sweep(context.Background())
	}); err != nil {
		log.Printf("failed to schedule status sweep: %v", err)
	}

	if _, err := c.AddFunc("@every "+cfg.AdSweepInterval.String(), func() {
		adSvc.Sweep(context.Background())
	}); err != nil {
		log.Printf("failed to schedule ad expiration sweep: %v", err)
	}

	c.Start()
	log.Printf("sweeps scheduled: status every %s, ads every %s", cfg.StatusSweepInterval, cfg.AdSweepInterval)
	return c
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
