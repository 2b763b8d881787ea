package sqldb

import "time"

type Config struct {
	Driver          string        `env:"SQL_DRIVER" envDefault:"postgres"`        // Driver is the database/sql driver name.
	DSN             string        `env:"SQL_DSN,required"`                        // DSN is the driver specific data source name.
	MaxOpenConns    int           `env:"SQL_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns    int           `env:"SQL_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is the maximum number of idle connections.
	ConnMaxLifetime time.Duration `env:"SQL_CONN_MAX_LIFETIME" envDefault:"30m"`  // ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxIdleTime time.Duration `env:"SQL_CONN_MAX_IDLE_TIME" envDefault:"10m"` // ConnMaxIdleTime is the maximum amount of time a connection may be idle.

	RetryAttempts int           `env:"SQL_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of attempts to reach the database.
	RetryInterval time.Duration `env:"SQL_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base interval between attempts.
}
