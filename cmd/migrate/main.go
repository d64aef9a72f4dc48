package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/noah-isme/backend-pricing/internal/obs"
)

func main() {
	var (
		source = flag.String("source", "file://migrations", "migration source URL")
		down   = flag.Bool("down", false, "roll back one migration instead of migrating up")
	)
	flag.Parse()

	logger := obs.NewLogger("console", "info")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}
	// The pgx/v5 migrate driver registers the pgx5 scheme.
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.New(*source, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open migrator")
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Error().AnErr("source", srcErr).AnErr("database", dbErr).Msg("close migrator")
		}
	}()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().Msg("database is up to date")
			return
		}
		logger.Fatal().Err(err).Msg("run migrations")
	}
	logger.Info().Msg("migrations applied")
}
