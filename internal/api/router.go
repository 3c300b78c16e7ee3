package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labsuite/user-access-api/internal/api/handler"
	"github.com/labsuite/user-access-api/internal/api/middleware"
	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/service"
	"github.com/labsuite/user-access-api/internal/infrastructure/config"
	mongodb "github.com/labsuite/user-access-api/internal/infrastructure/db/mongo"
	redisdb "github.com/labsuite/user-access-api/internal/infrastructure/db/redis"
	"github.com/labsuite/user-access-api/internal/infrastructure/http/handlers"
	"github.com/labsuite/user-access-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.AuditDispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("useraccess"))

	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	e.Use(middleware.RateLimit(limiter, log))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, nil)
	bootstrap := service.NewBootstrapChecker(userRepo, cfg.BootstrapCacheTTL, nil)
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, userRepo, log)

	userService := service.NewUserService(userRepo, roleRepo, tokens, bootstrap, audit, cfg.TokenTTL)
	roleService := service.NewRoleService(roleRepo)

	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	actionHandler := handler.NewActionHandler(userService)

	auth := middleware.Auth(tokens, bootstrap, log)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register, auth) // bootstrap vs crear_usuarios decided in the service
	users.POST("/login", userHandler.Login)
	users.GET("", userHandler.List, auth, middleware.RequirePermission(domain.PermViewUsers))
	users.GET("/:id", userHandler.Get, auth, middleware.RequirePermission(domain.PermViewUsers, domain.PermOwnProfile))
	users.PUT("/:id", userHandler.Update, auth, middleware.RequirePermission(domain.PermEditUsers, domain.PermOwnProfile))
	users.DELETE("/:id", userHandler.Delete, auth) // role-sensitive policy decided in the service

	// --- Role routes ---
	roles := e.Group("/roles", auth, middleware.RequirePermission(domain.PermSystemConfig))
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.PUT("/:name", roleHandler.UpdatePermissions)

	// --- Action log ---
	e.POST("/actions/record", actionHandler.Record, auth) // super-admin check in the service

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, audit
}
