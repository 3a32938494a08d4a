// reliefctl es la herramienta de operación del inventario de donaciones:
// aplica el esquema, importa planillas CSV sin pasar por HTTP, imprime el
// resumen del tablero y emite tokens para voluntarios.
//
// Uso: reliefctl <comando> [flags]
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands(os.Stdout) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
