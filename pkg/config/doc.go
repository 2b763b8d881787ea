// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv for optional .env files and
// github.com/caarlos0/env/v11 for tag-driven parsing:
//
//	type Config struct {
//		MessagesFile string `env:"VALIDATOR_MESSAGES_FILE"`
//		Timezone     string `env:"VALIDATOR_TIMEZONE" envDefault:"UTC"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithOptionalEnvFiles(".env"))
//
// Tests can bypass the process environment entirely with WithEnvironment.
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile.
package config
