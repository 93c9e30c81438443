package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/devcamper/bootcamp-api/docs"
	"github.com/devcamper/bootcamp-api/internal/api/handler"
	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/policy"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
	"github.com/devcamper/bootcamp-api/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Bootcamps ports.BootcampService
	Courses   ports.CourseService
	Reviews   ports.ReviewService

	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks map[string]func(context.Context) error

	SessionTTL   time.Duration
	SecureCookie bool
	Logger       zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(scopedLogger(d.Logger))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devcamper",
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	protect := middleware.Protect(d.Auth)
	listings := middleware.Authorize(policy.ManageListings...)
	reviewers := middleware.Authorize(policy.ManageReviews...)

	v1 := e.Group("/api/v1")

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth, d.SessionTTL, d.SecureCookie)
	a := v1.Group("/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.GET("/logout", auth.Logout)
	a.GET("/me", auth.Me, protect)
	a.PUT("/updatedetails", auth.UpdateDetails, protect)
	a.PUT("/updatepassword", auth.UpdatePassword, protect)
	a.POST("/forgotpassword", auth.ForgotPassword)
	a.PUT("/resetpassword/:resettoken", auth.ResetPassword)

	// --- Users (admin) ---
	users := handler.NewUserHandler(d.Users)
	u := v1.Group("/users", protect, middleware.Authorize(policy.ManageUsers...))
	u.GET("", users.List)
	u.POST("", users.Create)
	u.GET("/:id", users.Get)
	u.PUT("/:id", users.Update)
	u.DELETE("/:id", users.Delete)

	courses := handler.NewCourseHandler(d.Courses)
	reviews := handler.NewReviewHandler(d.Reviews)

	// --- Bootcamps ---
	bootcamps := handler.NewBootcampHandler(d.Bootcamps)
	b := v1.Group("/bootcamps")
	b.GET("", bootcamps.List)
	b.POST("", bootcamps.Create, protect, listings)
	b.GET("/radius/:zipcode/:distance", bootcamps.WithinRadius)
	b.GET("/:id", bootcamps.Get)
	b.PUT("/:id", bootcamps.Update, protect, listings)
	b.DELETE("/:id", bootcamps.Delete, protect, listings)
	b.GET("/:id/courses", courses.ListByBootcamp)
	b.POST("/:id/courses", courses.Add, protect, listings)
	b.GET("/:id/reviews", reviews.ListByBootcamp)
	b.POST("/:id/reviews", reviews.Add, protect, reviewers)

	// --- Courses ---
	c := v1.Group("/courses")
	c.GET("", courses.List)
	c.GET("/:id", courses.Get)
	c.PUT("/:id", courses.Update, protect, listings)
	c.DELETE("/:id", courses.Delete, protect, listings)

	// --- Reviews ---
	r := v1.Group("/reviews")
	r.GET("", reviews.List)
	r.GET("/:id", reviews.Get)
	r.PUT("/:id", reviews.Update, protect, reviewers)
	r.DELETE("/:id", reviews.Delete, protect, reviewers)

	return e
}

// scopedLogger puts a logger tagged with the request id on the request context.
func scopedLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			ctx := logger.WithContext(req.Context(), log.With().Str("request_id", id).Logger())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// requestLogger feeds one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
