package main

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // Driver untuk PostgreSQL
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"searchlight/db"
	"searchlight/internal/config"
	"searchlight/internal/logger"
)

func main() {
	config.LoadDotEnv()

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init("info", "searchlight-migrator")

	// File migrasi di-embed ke dalam binary, jadi migrator bisa dijalankan dari direktori mana pun.
	source, err := iofs.New(db.Migrations, db.MigrationsDir)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to open embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dbCfg.DSN())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to create migrate instance")
	}
	defer m.Close()

	// Menjalankan migrasi NAIK (menerapkan semua file .up.sql yang baru)
	logger.Logger.Info().Msg("running database migrations")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Logger.Warn().Err(err).Msg("could not read migration version")
	}
	logger.Logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("database migration completed successfully")
}
