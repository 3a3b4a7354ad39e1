package envconfig

import (
	"github.com/pr-poehali-dev/food-delivery-django/pkg/database"
)

// LoadDatabaseConfig loads database configuration from environment
// variables. DATABASE_URL carries the full connection string and stays
// empty when unset; database.NewConnection treats that as a failure.
func LoadDatabaseConfig() database.Config {
	config := database.DefaultConfig()

	config.DSN = GetEnv("DATABASE_URL", "")

	config.MaxOpenConns = GetInt("DB_MAX_OPEN_CONNS", config.MaxOpenConns)
	config.MaxIdleConns = GetInt("DB_MAX_IDLE_CONNS", config.MaxIdleConns)
	config.ConnMaxLifetime = GetDuration("DB_CONN_MAX_LIFETIME", config.ConnMaxLifetime)
	config.ConnMaxIdleTime = GetDuration("DB_CONN_MAX_IDLE_TIME", config.ConnMaxIdleTime)

	return config
}
