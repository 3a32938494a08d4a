package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/relief-inventory-api/pkg/config"
	"github.com/jhoicas/relief-inventory-api/pkg/logger"
)

// commands lista los subcomandos; out recibe la salida normal (stderr queda para errores).
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{out: out},
		&importCmd{out: out},
		&summaryCmd{out: out},
		&tokenCmd{out: out},
	}
}

// env configuración, logger y pool compartidos por los comandos que tocan la base.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("reliefctl requiere STORE_DRIVER=postgres (actual: %s)", cfg.Store.Driver)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: "reliefctl",
		Out:     os.Stderr,
	})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

func (e *env) Close() { e.pool.Close() }

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "error:", err)
	return subcommands.ExitFailure
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
