package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhive/task-tracker/docs"
	"github.com/taskhive/task-tracker/internal/api/handler"
	"github.com/taskhive/task-tracker/internal/api/middleware"
	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/service"
	mongodb "github.com/taskhive/task-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/task-tracker/internal/infrastructure/db/redis"
	"github.com/taskhive/task-tracker/internal/infrastructure/oauth"
	"github.com/taskhive/task-tracker/internal/pkg/config"
)

// Deps carries the externally-owned handles the router wires into handlers.
// Their lifecycle (open/close) belongs to the process entry point; nothing
// below this layer opens a connection of its own.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Providers *oauth.Registry
	Cfg       *config.Config
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tasktracker"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	accountRepo := mongodb.NewAccountRepository(deps.DB)
	todoRepo := mongodb.NewTodoRepository(deps.DB)
	stateStore := redisdb.NewStateStore(deps.Redis)

	// --- Services ---
	tokenService := service.NewTokenService(userRepo, deps.Cfg.JWTSecret, deps.Cfg.JWTTTL, deps.Log)
	authService := service.NewAuthService(userRepo, tokenService, deps.Cfg.BcryptCost, deps.Log)
	reconciler := service.NewReconcileService(userRepo, accountRepo, deps.Log)
	userService := service.NewUserService(userRepo)
	adminService := service.NewAdminService(userRepo, deps.Log)
	todoService := service.NewTodoService(todoRepo)
	notificationService := service.NewNotificationService(todoRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(deps.Providers, stateStore, reconciler, tokenService, deps.Log)
	profileHandler := handler.NewProfileHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	todoHandler := handler.NewTodoHandler(todoService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	authMiddleware := middleware.Auth(deps.Cfg.JWTSecret, tokenService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/oauth/:provider", oauthHandler.Begin)
	e.GET("/auth/oauth/:provider/callback", oauthHandler.Callback)

	// --- Session-gated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me", profileHandler.Me)
	v1.PATCH("/profile", profileHandler.Update)
	v1.GET("/notifications", notificationHandler.Get)
	v1.GET("/todos", todoHandler.List)
	v1.POST("/todos", todoHandler.Create)
	v1.PATCH("/todos/:id", todoHandler.Update)
	v1.DELETE("/todos/:id", todoHandler.Delete)

	// --- Admin routes (SUPER only) ---
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleSuper))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.SetRole)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
