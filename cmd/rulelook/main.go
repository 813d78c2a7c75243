package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mi-raf/rule-look/internal/api"
	"github.com/mi-raf/rule-look/internal/chatbot"
	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xlab/closer"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {

	defer closer.Close()

	closer.Bind(func() {
		log.Info().Msg("shutdown")
	})

	cfg, err := initConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Can't init config")
	}

	if err := initLogger(cfg); err != nil {
		log.Fatal().Err(err).Msg("Can't init logger")
	}

	if cfg.Storage == database.StoragePostgres {
		mf, err := migrateData(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Can't init migration")
		}
		closer.Bind(mf)
	}
	log.Info().Str("storage", cfg.Storage).Msg("preferences storage")

	ctx, cancelCtx := context.WithCancel(context.Background())
	closer.Bind(cancelCtx)

	a, cleanup, err := initApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Can't init app")
	}
	closer.Bind(cleanup)
	closer.Bind(a.Close)
	if err := a.Start(); err != nil {
		log.Fatal().Err(err).Msg("Can't start app")
	}

}

func initLogger(c *config) error {
	log.Debug().Msg("init logger")
	logLvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(logLvl)
	format := c.LogFmt
	if format == "auto" {
		format = "json"
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			format = "console"
		}
	}
	switch format {
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	case "json":
	default:
		return fmt.Errorf("unknown output format %s", c.LogFmt)

	}
	return nil
}

func migrateData(cfg *config) (func(), error) {
	log.Debug().Msg("start migrating data")
	m, err := migrate.New(
		cfg.MigrationDirectory,
		cfg.DbAddr)
	if err != nil {
		return nil, err
	}
	closeFn := func() {
		if err, _ := m.Close(); err != nil {
			log.Error().Err(err).Msg("can not graceful stop migration")
		}
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		log.Error().Err(err).Msg("can not migrate data")
		return closeFn, err
	}

	v, _, err := m.Version()
	if err != nil {
		log.Error().Err(err).Msg("can not get migration version")
		return closeFn, err
	}
	log.Info().Uint("version", v).Msg("migration succesful")

	return closeFn, nil
}

func initApiConfig(cfg *config) *api.Config {
	return &api.Config{Listen: cfg.Listen, CorsOrigins: cfg.CorsOrigins}
}

func initPreferenceConfig(cfg *config) *database.PreferenceConfig {
	return &database.PreferenceConfig{Storage: cfg.Storage, DbAddr: cfg.DbAddr, SqlitePath: cfg.SqlitePath}
}

func initServiceConfig(cfg *config) *service.Config {
	return &service.Config{Chat: chatbot.Config{ReplyDelay: cfg.ChatReplyDelay}}
}

func initSessionConfig(cfg *config) *session.Config {
	return &session.Config{Limit: cfg.SessionLimit}
}

func initSessionManager(f *service.Factory, cfg *session.Config) (*session.Manager, func(), error) {
	m, err := session.NewManager(f, cfg)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}
