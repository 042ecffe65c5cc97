package config

import (
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/logger"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/sync"
)

// Tenant holds the multi-tenancy settings.
type Tenant struct {
	// Enabled turns tenant support on. When off, users carry no tenant
	// reference and tenant-change operations are rejected.
	Enabled bool `toml:"enabled"`
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	LDAP      sync.LDAPConfig
	Tenant    Tenant
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
