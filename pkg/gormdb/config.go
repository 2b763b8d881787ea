package gormdb

type Config struct {
	DSN                  string `env:"GORM_DSN,required"`                            // DSN is the PostgreSQL connection string.
	PreferSimpleProtocol bool   `env:"GORM_PREFER_SIMPLE_PROTOCOL" envDefault:"false"` // PreferSimpleProtocol disables implicit prepared statements.
}
