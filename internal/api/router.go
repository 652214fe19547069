package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aleramosAR/Autenticacion-1/internal/api/handler"
	"github.com/aleramosAR/Autenticacion-1/internal/api/middleware"
	"github.com/aleramosAR/Autenticacion-1/internal/core/service"
	mongodb "github.com/aleramosAR/Autenticacion-1/internal/infrastructure/db/mongo"
	redisdb "github.com/aleramosAR/Autenticacion-1/internal/infrastructure/db/redis"
	"github.com/aleramosAR/Autenticacion-1/internal/pkg/config"
	"github.com/aleramosAR/Autenticacion-1/internal/realtime"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the realtime hub, which the caller must Run.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *realtime.Hub) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("autenticacion"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	signals := redisdb.NewSignalPublisher(rdb)

	authService := service.NewAuthService(service.DefaultStrategies(userRepo), userRepo, log)
	sessionStore := service.NewSessionStore(sessionRepo, service.SessionConfig{
		Secret:  cfg.Session.Secret,
		TTL:     cfg.Session.TTL(),
		Rolling: cfg.Session.Rolling,
	}, log)
	productService := service.NewProductService(productRepo, signals, log)
	messageService := service.NewMessageService(messageRepo, signals, log)

	hub := realtime.NewHub(productService, messageService, signals, log)

	codec := middleware.NewCookieCodec(cfg.Session.CookieName, cfg.Session.Secret, cfg.Session.TTL())
	gate := middleware.NewSessionGate(sessionStore, authService, codec, cfg.Session.Rolling, log)

	authHandler := handler.NewAuthHandler(authService, sessionStore, codec)
	pageHandler := handler.NewPageHandler(sessionStore, codec)
	productHandler := handler.NewProductHandler(productService)
	messageHandler := handler.NewMessageHandler(messageService)
	realtimeHandler := handler.NewRealtimeHandler(hub, log)

	// --- Auth & front routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	e.GET("/", pageHandler.Root)
	e.GET("/index", pageHandler.Index, gate.Page)
	e.GET("/login", pageHandler.Login)
	e.GET("/register", pageHandler.Register)
	e.GET("/unauthorized", pageHandler.Unauthorized)
	e.GET("/login-error", pageHandler.LoginError)
	e.GET("/register-error", pageHandler.RegisterError)

	// --- REST API (api-gated) ---
	products := e.Group("/api/productos", gate.API)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	messages := e.Group("/api/mensajes", gate.API)
	messages.GET("", messageHandler.List)
	messages.POST("", messageHandler.Create)

	// --- Realtime channel ---
	e.GET("/ws", realtimeHandler.Serve, gate.API)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, hub
}
