package config

// DB holds the database configuration settings.
type DB struct {
	// Engine selects the gorm driver: mysql, postgres or sqlite.
	Engine   string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// File is the database file path for the sqlite engine.
	File string
}
