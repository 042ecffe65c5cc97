package handler

const (
	// RootPath is the base path of the admin API.
	RootPath = "/api"

	// HealthPath is the unauthenticated liveness endpoint.
	HealthPath = "/healthz"

	// LocalsUser is the fiber locals key of the authenticated operator.
	LocalsUser = "user"
)
