package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/csvrows"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/postgres"
)

type importCmd struct {
	out     io.Writer
	file    string
	actor   string
	charset string
	dryRun  bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "reconcilia una planilla CSV contra el ledger" }
func (*importCmd) Usage() string {
	return `reliefctl import -file <planilla.csv> -actor <user_id> [-charset latin1] [-dry-run]

  Aplica todas las filas en una sola transacción, igual que POST /api/uploads/import.
  Si una salida no tiene stock suficiente no se aplica ninguna fila.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Ruta de la planilla CSV (obligatoria).")
	f.StringVar(&c.actor, "actor", "", "ID del usuario al que se atribuyen los movimientos (obligatorio).")
	f.StringVar(&c.charset, "charset", "", "Codificación del archivo: utf-8, latin1 o windows-1252. Vacío usa IMPORT_DEFAULT_CHARSET.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Ejecuta las reglas y reporta sin persistir.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || c.actor == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	if _, err := postgres.NewUserRepository(e.pool).GetByID(ctx, c.actor); err != nil {
		return fail(fmt.Errorf("actor %s: %w", c.actor, err))
	}

	fh, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer fh.Close()

	charset := c.charset
	if charset == "" {
		charset = e.cfg.Import.DefaultCharset
	}
	sheet, err := csvrows.Read(fh, csvrows.Options{Charset: charset, MaxRows: e.cfg.Import.MaxRows})
	if err != nil {
		return fail(err)
	}

	uc := inventory.NewReconcileUseCase(postgres.NewTxRunner(e.pool), e.log.Component("import"), e.cfg.Import.MaxRows)
	result, err := uc.Reconcile(ctx, sheet.Records, c.actor, inventory.ReconcileOptions{
		DryRun:     c.dryRun,
		RowNumbers: sheet.Rows,
	})
	if result != nil {
		if werr := writeJSON(c.out, result); werr != nil {
			return fail(errors.Join(err, werr))
		}
	}
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
