// Package daemon wires the configuration, database and web service together.
package daemon

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/dsn"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web"
)

// ErrUnknownDBEngine is returned when db.engine names no supported gorm driver.
var ErrUnknownDBEngine = errors.New("unknown db engine, want mysql, postgres or sqlite")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service and blocks until it is stopped by a
// shutdown signal.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// OpenDB opens the authorization store with the configured gorm driver.
// TranslateError is enabled so uniqueness violations surface as
// gorm.ErrDuplicatedKey across all engines.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case "mysql":
		dialector = gormmysql.Open(dsn.Create(cfg))
	case "postgres":
		dialector = gormpostgres.Open(dsn.CreatePostgres(cfg))
	case "sqlite":
		dialector = sqlite.Open(cfg.DB.File)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDBEngine, cfg.DB.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Tenant{},
		&models.AuthUser{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
