package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"larismanis/internal/domain/repositories"
)

// RepositoryConfig holds configuration shared by repository implementations
type RepositoryConfig struct {
	Pool      *pgxpool.Pool
	Tables    *TableNames
	TxManager repositories.TransactionManager
	Logger    *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	ChatSessions string
	ContentPlans string
	Generations  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		ChatSessions: fmt.Sprintf("%schat_sessions", prefix),
		ContentPlans: fmt.Sprintf("%scontent_plans", prefix),
		Generations:  fmt.Sprintf("%sgenerations", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool with PgBouncer
// compatibility for Supabase.
//
// Supabase's transaction pooler (port 6543) does not support prepared
// statements, so when that port is detected the pool switches to
// QueryExecModeCacheDescribe: it still uses the extended protocol (required
// for proper JSONB encoding of the plans/messages columns) but caches
// statement descriptions instead of prepared statements. An explicit
// default_query_exec_mode in the connection string takes precedence.
//
// Dynamic table prefixes (dev_/test_/prod_) are interpolated into the SQL
// before it reaches the database, so each environment gets its own cached
// statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the query executor for the context: the transaction if
// one is present, otherwise the pool. Repositories automatically participate
// in transactions opened by the TransactionManager.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
