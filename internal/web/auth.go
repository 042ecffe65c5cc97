package web

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/controller/authuser"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/web/handler"
)

const basicPrefix = "Basic "

// AuthMiddleware authenticates requests with HTTP basic auth against local
// operator accounts (users carrying a password hash). The authenticated user
// is stored in the request locals under handler.LocalsUser.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}

		user, err := authuser.GetByEmail(db, email)
		if err != nil || !user.VerifyPassword(password) {
			return unauthorized(c)
		}

		c.Locals(handler.LocalsUser, user)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="GoAuthZ-Admin"`)

	return c.SendStatus(fiber.StatusUnauthorized)
}

// parseBasicAuth decodes an "Authorization: Basic ..." header value.
func parseBasicAuth(header string) (email, password string, ok bool) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
	if err != nil {
		return "", "", false
	}

	email, password, ok = strings.Cut(string(decoded), ":")

	return email, password, ok
}
