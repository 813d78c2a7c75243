package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

type config struct {
	Listen             string        `env:"LISTEN" envDefault:":9000"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"debug"`
	LogFmt             string        `env:"LOG_FMT" envDefault:"auto"`
	Storage            string        `env:"STORAGE" envDefault:"memory"`
	DbAddr             string        `env:"DB_HOST"`
	SqlitePath         string        `env:"SQLITE_PATH" envDefault:"rulelook.db"`
	MigrationDirectory string        `env:"MIGRATION_DIR" envDefault:"file://init/migrations"`
	ChatReplyDelay     time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"500ms"`
	SessionLimit       int           `env:"SESSION_LIMIT" envDefault:"1024"`
	CorsOrigins        []string      `env:"CORS_ORIGINS" envSeparator:";"`
}

func initConfig() (*config, error) {
	cfg := &config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
