package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/panorama-auth/database"
)

// PoolConfig tunes the connection pool. Zero values keep pgxpool defaults.
type PoolConfig struct {
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// Connection is a migrated, reachable postgres pool.
type Connection struct {
	*pgxpool.Pool
}

// NewConection opens the pool, checks the server answers and applies pending migrations.
func NewConection(ctx context.Context, dsn string, poolCfg PoolConfig) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if poolCfg.MaxConns > 0 {
		conf.MaxConns = poolCfg.MaxConns
	}
	if poolCfg.MinConns > 0 {
		conf.MinConns = poolCfg.MinConns
	}
	if poolCfg.ConnectTimeout > 0 {
		conf.ConnConfig.ConnectTimeout = poolCfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		Pool: pool,
	}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}
