package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/agriprofit/agriprofit/api/handlers"
	"github.com/agriprofit/agriprofit/api/middleware"
	"github.com/agriprofit/agriprofit/api/ws"
	_ "github.com/agriprofit/agriprofit/docs"
	"github.com/agriprofit/agriprofit/internal/auth"
	"github.com/agriprofit/agriprofit/internal/cache"
	"github.com/agriprofit/agriprofit/internal/predictor"
	"github.com/agriprofit/agriprofit/pkg/config"
	"github.com/agriprofit/agriprofit/pkg/database"
	"github.com/agriprofit/agriprofit/pkg/database/queries"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.APIConfig
	db          *database.DB
	cache       *cache.Client
	engine      *predictor.Engine
	authService *auth.Service
	wsHub       *ws.Hub
}

// NewServer assembles the router. cacheClient may be nil when Redis is
// disabled.
func NewServer(cfg config.APIConfig, db *database.DB, cacheClient *cache.Client, engine *predictor.Engine) *Server {
	if cfg.JWTSecret == "" || cfg.JWTSecret == "change-me-in-production" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTDuration)
	wsHub := ws.NewHub()

	s := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		cache:       cacheClient,
		engine:      engine,
		authService: authService,
		wsHub:       wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(s.corsConfig()))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.Telemetry())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxBodyBytes))

	rateLimiter := middleware.NewRateLimiter(s.config.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

func (s *Server) corsConfig() middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig()
	if len(s.config.CORS.AllowedOrigins) > 0 {
		cfg.AllowOrigins = s.config.CORS.AllowedOrigins
	}
	if len(s.config.CORS.AllowedMethods) > 0 {
		cfg.AllowMethods = s.config.CORS.AllowedMethods
	}
	if len(s.config.CORS.AllowedHeaders) > 0 {
		cfg.AllowHeaders = s.config.CORS.AllowedHeaders
	}
	if len(s.config.CORS.ExposedHeaders) > 0 {
		cfg.ExposeHeaders = s.config.CORS.ExposedHeaders
	}
	cfg.AllowCredentials = s.config.CORS.AllowCredentials
	return cfg
}

func (s *Server) setupRoutes() {
	// Repositories
	userRepo := queries.NewUserRepository(s.db.DB)
	predictionRepo := queries.NewPredictionRepository(s.db.DB)
	messageRepo := queries.NewMessageRepository(s.db.DB)

	var respCache handlers.ResponseCache
	var cacheChecker handlers.HealthChecker
	if s.cache != nil {
		respCache = s.cache
		cacheChecker = s.cache
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(s.db, cacheChecker)
	authHandler := handlers.NewAuthHandler(userRepo, s.authService, s.config.CookieName, s.config.CookieSecure)
	predictHandler := handlers.NewPredictHandler(s.engine, predictionRepo, respCache, s.wsHub)
	historyHandler := handlers.NewHistoryHandler(predictionRepo)
	reportHandler := handlers.NewReportHandler(s.engine)
	contactHandler := handlers.NewContactHandler(messageRepo)
	pageHandler := handlers.NewPageHandler(s.authService, s.config.CookieName)

	// HTML pages and static assets
	if s.config.TemplatesGlob != "" {
		s.router.LoadHTMLGlob(s.config.TemplatesGlob)
		s.router.GET("/", pageHandler.Home)
		s.router.GET("/about", pageHandler.About)
		s.router.GET("/contact", pageHandler.Contact)
		s.router.GET("/login", pageHandler.Login)
		s.router.GET("/register", pageHandler.Register)
		s.router.GET("/prediction", pageHandler.Prediction)
	}
	if s.config.StaticDir != "" {
		s.router.Static("/static", s.config.StaticDir)
	}

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	// Auth routes with stricter limits against credential stuffing
	authGroup := s.router.Group("/api/auth")
	authGroup.Use(middleware.AuthRateLimiter())
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Prediction API. The predict endpoint itself is public so the form
	// works without an account; history requires a token.
	s.router.POST("/api/predict_all", middleware.OptionalJWTAuth(s.authService, s.config.CookieName), predictHandler.Predict)
	s.router.GET("/api/crops", predictHandler.ListCrops)
	s.router.POST("/api/report", reportHandler.Generate)
	s.router.POST("/api/contact", contactHandler.Submit)

	// WebSocket feed
	s.router.GET("/ws/feed", ws.ServeFeed(s.wsHub))

	// Protected routes
	protected := s.router.Group("/api")
	protected.Use(middleware.JWTAuth(s.authService, s.config.CookieName))
	{
		protected.GET("/predictions", historyHandler.List)
		protected.GET("/auth/me", authHandler.Me)
	}

	if s.config.SwaggerEnabled {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Hub() *ws.Hub {
	return s.wsHub
}
