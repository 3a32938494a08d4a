package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/jhoicas/relief-inventory-api/pkg/config"
	"github.com/jhoicas/relief-inventory-api/pkg/jwt"
)

type tokenCmd struct {
	out  io.Writer
	user string
	role string
	exp  int

	// loadConfig se reemplaza en tests.
	loadConfig func() (*config.Config, error)
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "emite un Bearer token firmado con JWT_SECRET" }
func (*tokenCmd) Usage() string {
	return `reliefctl token -user <user_id> [-role <rol>] [-exp <minutos>]

  Útil para operar la API sin el componente de identidad (por ejemplo en staging).
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID del usuario (obligatorio).")
	f.StringVar(&c.role, "role", "", "Rol opcional que viaja en el token.")
	f.IntVar(&c.exp, "exp", 0, "Minutos de validez. 0 usa JWT_EXPIRATION_MINUTES.")
}

func (c *tokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	load := c.loadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		return fail(err)
	}
	exp := c.exp
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, c.user, c.role, cfg.JWT.Issuer, exp)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.out, tok)
	return subcommands.ExitSuccess
}
