package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/postgres"
)

type migrateCmd struct {
	out io.Writer
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "crea (si faltan) las tablas del ledger y sus restricciones" }
func (*migrateCmd) Usage() string {
	return `reliefctl migrate

  Aplica el esquema embebido: categories, items, stock_movements y la tabla
  mínima de users. Es idempotente.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	if err := postgres.EnsureSchema(ctx, e.pool); err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.out, "esquema aplicado")
	return subcommands.ExitSuccess
}
