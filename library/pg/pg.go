package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/srimathim2003/Employee-Management/library/yamlenv"
)

type PostgresConfig struct {
	Conn            *yamlenv.Env[string]        `yaml:"conn"`
	MaxConns        *yamlenv.Env[int32]         `yaml:"max_conns"`
	MinConns        *yamlenv.Env[int32]         `yaml:"min_conns"`
	MaxConnIdleTime *yamlenv.Env[time.Duration] `yaml:"max_conn_idle_time"`
	ApplicationName *yamlenv.Env[string]        `yaml:"application_name"`
}

type PG struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPG(ctx context.Context, cfg PostgresConfig, log zerolog.Logger) (*PG, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Conn.Get())
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	poolCfg.MaxConns = 10
	if v := cfg.MaxConns.Get(); v > 0 {
		poolCfg.MaxConns = v
	}
	poolCfg.MinConns = cfg.MinConns.Get()
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	if v := cfg.MaxConnIdleTime.Get(); v > 0 {
		poolCfg.MaxConnIdleTime = v
	}
	poolCfg.HealthCheckPeriod = 30 * time.Second

	appName := cfg.ApplicationName.Get()
	if appName == "" {
		appName = "ems-backend"
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SELECT set_config('application_name', $1, false)", appName)
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("postgres connected")

	return &PG{pool: pool, log: log}, nil
}

func (p *PG) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *PG) Close() {
	if p == nil || p.pool == nil {
		return
	}

	p.pool.Close()
	p.log.Info().Msg("postgres pool closed")
}
