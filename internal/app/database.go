package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/taskflow/internal/config"
	"github.com/adanyl0v/taskflow/internal/store"
)

var (
	globalPostgresPool *pgxpool.Pool
	globalDB           *store.DB
)

// MustOpenDatabase connects to the configured driver and applies the
// schema.
func MustOpenDatabase() {
	cfg := config.Global()
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		mustConnectPostgres()
		globalDB = store.NewPostgres(globalPostgresPool)
	case config.DBDriverSQLite:
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLitePath).
				Msg("failed to open sqlite")
			panic(err)
		}
		globalDB = db
		globalLogger.Info().
			Str("path", cfg.SQLitePath).
			Msg("opened sqlite")
	}

	err := globalDB.Migrate(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", globalDB.DriverName()).
			Msg("failed to migrate database")
		panic(err)
	}
	globalLogger.Info().
		Str("driver", globalDB.DriverName()).
		Msg("migrated database")
}

func CloseDatabase() {
	err := globalDB.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close database")
	}
	if globalPostgresPool != nil {
		globalPostgresPool.Close()
	}
	globalLogger.Info().Msg("closed database")
}

func mustConnectPostgres() {
	cfg := config.Global().Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}
