// Package web implements the admin JSON API of GoAuthZ-Admin.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	accesslog "github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/logger/adapter/fiber"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler/syncer"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler/user"
)

// Service represents the web service.
type Service struct {
	App *fiber.App
	cfg *config.Config
	db  *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	if s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf("graceful shutdown: waiting %d seconds before stopping", s.cfg.Webserver.ShutDownTime)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoAuthZ-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: handler.HealthPath,
	}))

	// health endpoint stays unauthenticated for load balancers
	app.Get(handler.HealthPath, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// basic auth against local operator accounts
	app.Use(AuthMiddleware(db))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	// init handlers (they register their own routes)
	syncer.Handler.Init(app, cfg, db)
	user.Handler.Init(app, cfg, db)

	return service
}
