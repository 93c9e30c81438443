// Command api serves the DevCamper bootcamp directory.
//
// @title                       DevCamper API
// @version                     1.0
// @description                 Bootcamp directory with courses, reviews and role-based access.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/devcamper/bootcamp-api/internal/api"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
	"github.com/devcamper/bootcamp-api/internal/core/service"
	"github.com/devcamper/bootcamp-api/internal/core/token"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/db/mongo"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/db/redis"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/geocode"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/mail"
	"github.com/devcamper/bootcamp-api/internal/infrastructure/queue"
	"github.com/devcamper/bootcamp-api/internal/pkg/config"
	"github.com/devcamper/bootcamp-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "devcamper",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer disconnect(client, log)

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	bootcamps := mongo.NewBootcampRepository(db)
	courses := mongo.NewCourseRepository(db)
	reviews := mongo.NewReviewRepository(db)

	averages := queue.NewDispatcher(0, bootcamps, logger.Component("averages"))
	averages.Start()
	defer averages.Stop()

	// --- Collaborators ---
	var mailer ports.Mailer = mail.NewLogMailer(logger.Component("mail"))
	if cfg.Mail.Enabled() {
		mailer = mail.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.From, logger.Component("mail"))
	}
	var geocoder ports.Geocoder
	if cfg.Geocoder.Enabled() {
		geocoder = geocode.NewClient(cfg.Geocoder.URL, cfg.Geocoder.APIKey)
	} else {
		log.Warn().Msg("GEOCODER_API_KEY not set: bootcamps will not be geocoded and radius search is disabled")
	}

	// --- Services ---
	sessions := token.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)
	authSvc := service.NewAuthService(users, sessions, mailer, redis.NewResetLock(rdb), cfg.Auth.ResetTokenTTL, logger.Component("auth"))

	e := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Users:     service.NewUserService(users, logger.Component("users")),
		Bootcamps: service.NewBootcampService(bootcamps, courses, reviews, geocoder, logger.Component("bootcamps")),
		Courses:   service.NewCourseService(courses, averages.Repository(), logger.Component("courses")),
		Reviews:   service.NewReviewService(reviews, averages.Repository(), logger.Component("reviews")),
		HealthChecks: map[string]func(context.Context) error{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   redis.Check(rdb, 0),
		},
		SessionTTL:   sessions.TTL(),
		SecureCookie: cfg.IsProduction(),
		Logger:       logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func disconnect(client *mongodrv.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}
