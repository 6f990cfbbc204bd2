package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/photoshare/photoshare-api/docs"
	"github.com/photoshare/photoshare-api/internal/api/handler"
	"github.com/photoshare/photoshare-api/internal/api/middleware"
	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
	"github.com/photoshare/photoshare-api/internal/core/service"
	mongodb "github.com/photoshare/photoshare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/photoshare/photoshare-api/internal/infrastructure/db/redis"
)

// Deps holds everything the router needs to assemble the application.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	ImagesDir string
	FileStore ports.FileStore
	Cleaner   ports.FileCleaner
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("photoshare"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	photoRepo := mongodb.NewPhotoRepository(deps.Mongo)
	denylist := redisdb.NewTokenDenylist(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, denylist, deps.JWTSecret, 24*time.Hour)
	friendService := service.NewFriendService(userRepo, deps.Logger)
	userService := service.NewUserService(userRepo)
	photoService := service.NewPhotoService(photoRepo, userRepo, deps.FileStore, deps.Cleaner, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	friendHandler := handler.NewFriendHandler(friendService)
	userHandler := handler.NewUserHandler(userService)
	photoHandler := handler.NewPhotoHandler(photoService)

	authRequired := middleware.Auth(deps.JWTSecret, denylist)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/users", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	users := e.Group("/users", authRequired)
	// Static paths before the :id wildcard so they are not captured by it.
	users.GET("/list", userHandler.List)
	users.GET("/search", userHandler.Search)
	users.GET("/friend-requests", friendHandler.ListRequests)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/friends", friendHandler.ListFriends)
	users.GET("/:id/friend-status", friendHandler.Status)
	users.POST("/:id/friend-request", friendHandler.Send)
	users.POST("/:id/friend-accept", friendHandler.Accept)
	users.POST("/:id/friend-reject", friendHandler.Reject)
	users.POST("/:id/friend-cancel", friendHandler.Cancel)
	users.POST("/:id/unfriend", friendHandler.Unfriend)

	photos := e.Group("/photos", authRequired)
	photos.POST("/new", photoHandler.Upload)
	photos.GET("/user/:id", photoHandler.OfUser)
	photos.DELETE("/:id", photoHandler.Delete)
	photos.POST("/:id/like", photoHandler.Like)
	photos.DELETE("/:id/like", photoHandler.Unlike)
	photos.POST("/:photo_id/comments", photoHandler.AddComment)
	photos.PUT("/:photo_id/comments/:comment_id", photoHandler.UpdateComment)
	photos.DELETE("/:photo_id/comments/:comment_id", photoHandler.DeleteComment)

	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", userHandler.AdminList)

	// --- Uploaded images ---
	e.Static("/images", deps.ImagesDir)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
