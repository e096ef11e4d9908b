package database

import (
	"context"
	"time"

	"jobboard-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tunes the pgx pool; zero values keep the defaults below
type PoolOptions struct {
	MaxConns int
	MinConns int
}

func NewPostgresConnection(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// PgBouncer in transaction mode rejects named prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 25
	config.MinConns = 5
	if opts.MaxConns > 0 {
		config.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 && opts.MinConns <= opts.MaxConns {
		config.MinConns = int32(opts.MinConns)
	}
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Log.Infow("Database connection established", "max_conns", config.MaxConns)
	return pool, nil
}
