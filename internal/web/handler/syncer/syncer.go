// Package syncer provides handlers for the directory synchronization workflow:
// computing the pending change set and applying a reviewed one.
package syncer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/sync"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler"
)

// Path is the base path for directory synchronization.
const Path = handler.RootPath + "/sync"

// Service provides the synchronization API endpoints.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	syncer *sync.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg("app, config and db are required")
		return
	}

	s.db = db
	s.cfg = cfg

	reader, err := sync.NewLDAPReader(&cfg.LDAP)
	switch {
	case err == nil:
		s.syncer = sync.NewService(db, reader, cfg.Tenant.Enabled)
	case errors.Is(err, sync.ErrLDAPDisabled):
		s.syncer = sync.NewService(db, nil, cfg.Tenant.Enabled)
	default:
		log.Fatal().Err(err).Msg("identity reader setup failed")
		return
	}

	// Routes
	app.Get(Path+"/changes", s.Changes)
	app.Post(Path+"/apply", s.Apply)
}

// Changes computes the pending change set between the identity directory and
// the local store and returns it for operator review.
func (s *Service) Changes(c *fiber.Ctx) error {
	changes, err := s.syncer.ComputeChanges()
	if err != nil {
		if errors.Is(err, sync.ErrNoIdentityReader) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no identity directory configured"})
		}

		log.Error().Err(err).Msg("compute changes failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute changes"})
	}

	return c.JSON(changes)
}

// Apply applies a reviewed change set in one transaction and reports the
// aggregate outcome. The request body is the (possibly amended) change list
// returned by Changes.
func (s *Service) Apply(c *fiber.Ctx) error {
	var changes []*sync.UserChange

	if err := c.BodyParser(&changes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid change set"})
	}

	st, err := s.syncer.ApplyChanges(changes)
	if err != nil {
		log.Error().Err(err).Msg("apply changes failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to apply changes"})
	}

	if !st.IsValid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(handler.StatusJSON(st))
	}

	return c.JSON(handler.StatusJSON(st))
}
