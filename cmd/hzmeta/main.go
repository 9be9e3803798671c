package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/guillermoBallester/hzmeta/internal/app"
	"github.com/guillermoBallester/hzmeta/internal/config"
)

const usage = `usage: hzmeta [flags] <command>

commands:
  catalogs      list catalogs
  schemas       list schemas
  table-types   list table types
  type-info     describe supported data types
  tables        list tables (--catalog --schema --table --type)
  columns       list columns (--catalog --schema --table --column)
  info          describe the engine

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("hzmeta", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)

	var opts commandOptions
	opts.register(fs)

	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one command")
	}
	cmd, err := lookupCommand(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Results go to stdout, logs to stderr.
	logger := app.NewLogger(stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rt, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	return cmd(ctx, rt.Metadata, opts, stdout)
}
