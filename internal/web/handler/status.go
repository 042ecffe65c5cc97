package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/status"
)

// StatusJSON renders a status result as the common API response shape.
func StatusJSON(st *status.Status) fiber.Map {
	errs := make([]string, 0, len(st.Errors()))
	for _, err := range st.Errors() {
		errs = append(errs, err.Error())
	}

	return fiber.Map{
		"valid":   st.IsValid(),
		"message": st.Message(),
		"errors":  errs,
	}
}
