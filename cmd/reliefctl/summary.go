package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	appanalytics "github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	infrapdf "github.com/jhoicas/relief-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/postgres"
)

type summaryCmd struct {
	out     io.Writer
	pdfPath string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "imprime el resumen del tablero o lo guarda como PDF" }
func (*summaryCmd) Usage() string {
	return `reliefctl summary [-pdf <resumen.pdf>]

  Sin flags imprime el mismo JSON que GET /api/donations/dashboard.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pdfPath, "pdf", "", "Escribe el resumen en PDF en esta ruta en lugar de imprimir JSON.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	uc := appanalytics.NewDashboardUseCase(postgres.NewReportRepository(e.pool), infrapdf.NewMarotoPDFGenerator(e.cfg.App.Name))

	if c.pdfPath == "" {
		summary, err := uc.GetSummary(ctx)
		if err != nil {
			return fail(err)
		}
		if err := writeJSON(c.out, summary); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	pdfBytes, _, err := uc.DownloadSummaryPDF(ctx)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.pdfPath, pdfBytes, 0o644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.out, "resumen escrito en %s (%d bytes)\n", c.pdfPath, len(pdfBytes))
	return subcommands.ExitSuccess
}
