package daemon

import (
	"crypto/rand"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

const (
	adminRoleName  = "admin"
	viewerRoleName = "viewer"

	initialAdminUserID = "local-admin"
	initialAdminEmail  = "admin@localhost"

	initialPasswordLen = 16
)

// passwordChars is the character set for generated initial passwords.
var passwordChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

func seed(_ *config.Config, db *gorm.DB) {
	// Seed baseline roles if the role table is empty
	var count int64

	db.Model(&models.Role{}).Count(&count)
	if count == 0 {
		db.Create(&models.Role{Name: adminRoleName, Description: "Full access to the admin API"})
		db.Create(&models.Role{Name: viewerRoleName, Description: "Read-only access"})
	}

	// Seed an initial local operator account if the user table is empty.
	// It shows up as a removal candidate in later syncs; operators keep it
	// by confirming NoChange during review.
	db.Model(&models.AuthUser{}).Count(&count)
	if count == 0 {
		password := randomPassword(initialPasswordLen)

		var adminRole models.Role
		db.Where("name = ?", adminRoleName).First(&adminRole)

		db.Create(
			&models.AuthUser{
				UserID:       initialAdminUserID,
				Email:        initialAdminEmail,
				UserName:     "Administrator",
				PasswordHash: models.HashPassword(password),
				Roles:        []models.Role{adminRole},
			},
		)

		log.Info().Msgf("created initial admin user %s with password %s - change it after first login",
			initialAdminEmail, password)
	}
}

// randomPassword returns a random string of the given length from
// passwordChars, rejecting bytes that would introduce modulo bias.
func randomPassword(length int) string {
	maxAccepted := 255 - (256 % len(passwordChars))

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			log.Fatal().Err(err).Msg("failed to read random bytes")
		}

		for _, b := range buf {
			if int(b) > maxAccepted {
				continue
			}

			out = append(out, passwordChars[int(b)%len(passwordChars)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
