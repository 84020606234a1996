package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBOptions sizes and connects the measurement-history pool. Zero values
// fall back to defaults suited to the history workload: one write per
// analysis plus the occasional list and nightly prune.
type DBOptions struct {
	DSN       string
	MaxConns  int32
	MinConns  int32
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenDB opens and pings the Postgres pool backing the measurement
// history store.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	cfg, err := historyPoolConfig(opt)
	if err != nil {
		return nil, err
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("measurement-history store connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("measurement-history store unreachable: %w", err)
	}

	return pool, nil
}

// historyPoolConfig turns DBOptions into a pgx pool config, applying the
// sizing knobs only when set so pgx defaults survive otherwise.
func historyPoolConfig(opt DBOptions) (*pgxpool.Config, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("measurement history needs a Postgres DSN (DB_DSN)")
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse measurement-history DSN: %w", err)
	}

	if opt.MaxConns > 0 {
		cfg.MaxConns = opt.MaxConns
	}
	if opt.MinConns > 0 {
		cfg.MinConns = opt.MinConns
	}
	return cfg, nil
}
