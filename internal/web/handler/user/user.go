// Package user provides handlers for querying and mutating authorization users.
package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/authuser"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/status"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/useradmin"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler"
)

// Path is the base path for user management.
const Path = handler.RootPath + "/users"

// Service provides the user API endpoints.
type Service struct {
	cfg   *config.Config
	db    *gorm.DB
	admin *useradmin.Service
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
	s.admin = useradmin.NewService(db, cfg.Tenant.Enabled)

	// Routes
	app.Get(Path, s.List)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path+"/:id/name", s.Rename)
	app.Post(Path+"/:id/email", s.ChangeEmail)
	app.Post(Path+"/:id/roles", s.AddRole)
	app.Delete(Path+"/:id/roles/:role", s.RemoveRole)
	app.Post(Path+"/:id/tenant", s.ChangeTenant)
}

// List returns all users, optionally scoped to a tenant data-key prefix.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		users []models.AuthUser
		err   error
	)

	if prefix := c.Query("tenantKey", ""); prefix != "" {
		users, err = authuser.GetAllByTenantDataKey(s.db, prefix)
	} else {
		users, err = authuser.GetAll(s.db)
	}

	if err != nil {
		log.Error().Err(err).Msg("query users failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load users"})
	}

	return c.JSON(users)
}

// Get returns one user by stable id.
func (s *Service) Get(c *fiber.Ctx) error {
	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	return c.JSON(user)
}

// Rename changes the user's display name.
func (s *Service) Rename(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}

	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}

	return s.renderStatus(c, s.admin.Rename(user, in.Name))
}

// ChangeEmail changes the user's email address.
func (s *Service) ChangeEmail(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}

	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}

	return s.renderStatus(c, s.admin.ChangeEmail(user, in.Email))
}

// AddRole assigns a role to the user.
func (s *Service) AddRole(c *fiber.Ctx) error {
	var in struct {
		Role string `json:"role"`
	}

	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}

	return s.renderStatus(c, s.admin.AddRole(user, in.Role))
}

// RemoveRole removes a role from the user.
func (s *Service) RemoveRole(c *fiber.Ctx) error {
	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	return s.renderStatus(c, s.admin.RemoveRole(user, c.Params("role")))
}

// ChangeTenant moves the user to another tenant.
func (s *Service) ChangeTenant(c *fiber.Ctx) error {
	var in struct {
		Tenant string `json:"tenant"`
	}

	user, ok, err := s.loadUser(c)
	if !ok {
		return err
	}

	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}

	return s.renderStatus(c, s.admin.ChangeTenant(user, in.Tenant))
}

// loadUser loads the user addressed by the :id route parameter with its role
// set and tenant. When ok is false the response has already been written.
func (s *Service) loadUser(c *fiber.Ctx) (*models.AuthUser, bool, error) {
	user, err := authuser.GetByUserID(s.db, c.Params("id"))
	if err != nil {
		if errors.Is(err, authuser.ErrUserNotFound) || errors.Is(err, authuser.ErrUserIDEmpty) {
			return nil, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}

		log.Error().Err(err).Msg("load user failed")

		return nil, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load user"})
	}

	return user, true, nil
}

// renderStatus writes the outcome of a mutation as the common status shape.
// Invalid results answer with 422 so API clients can branch on the code alone.
func (s *Service) renderStatus(c *fiber.Ctx, st *status.Status) error {
	if !st.IsValid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(handler.StatusJSON(st))
	}

	return c.JSON(handler.StatusJSON(st))
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
}
