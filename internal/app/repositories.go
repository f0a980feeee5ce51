package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/kickoff-tournaments/internal/config"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("using postgres storage", "db_name", dbNameFromURL(cfg.DBURL), "cache_enabled", cfg.CacheEnabled)
		return withCache(cfg, repositories{
			tournaments:  postgres.NewTournamentRepository(db),
			brackets:     postgres.NewBracketRepository(db),
			availability: postgres.NewAvailabilityRepository(db),
			close:        db.Close,
		}), nil
	default:
		store := memory.NewStore()
		logger.Info("using in-memory storage")
		return repositories{
			tournaments:  memory.NewTournamentRepository(store),
			brackets:     memory.NewBracketRepository(store),
			availability: memory.NewAvailabilityRepository(store),
			close:        func() error { return nil },
		}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	}
	return db, nil
}

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace and truncates the statement
// recorded on database spans.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
