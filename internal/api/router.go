package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/montech/articles-api/internal/api/handler"
	"github.com/montech/articles-api/internal/api/middleware"
	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer needs. Mongo and Redis
// are only used by the readiness check and may be nil in tests.
type Dependencies struct {
	Users       ports.UserService
	Articles    ports.ArticleService
	Tokens      middleware.TokenVerifier
	Revocations middleware.RevocationChecker

	Mongo *mongo.Database
	Redis *redis.Client

	Logger      zerolog.Logger
	CORSOrigins []string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			"X-Requested-With",
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Observability (no auth required) ---
	health := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))

	auth := middleware.Auth(deps.Tokens, deps.Revocations)
	requireEditor := middleware.RequireRole(deps.Users, domain.RoleEditor)

	v1 := e.Group("/api/v1")

	// --- Users ---
	users := handler.NewUserHandler(deps.Users)
	ug := v1.Group("/users")
	ug.GET("", users.List)
	ug.POST("/signup", users.Signup)
	ug.POST("/login", users.Login)
	ug.GET("/logout", users.Logout, auth)

	// --- Articles ---
	articles := handler.NewArticleHandler(deps.Articles)
	ag := v1.Group("/articles")
	ag.GET("", articles.List)
	ag.GET("/article/:id", articles.Get, auth)
	ag.GET("/:user/article", articles.ListByUser, auth)
	ag.POST("/create", articles.Create, auth)
	ag.PUT("/update/:id", articles.Update, auth)
	ag.DELETE("/delete/:id", articles.Delete, auth)
	ag.PUT("/status/:id", articles.SetStatus, auth, requireEditor)

	return e
}
