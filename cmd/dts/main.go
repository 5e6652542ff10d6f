package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/martinohmann/dts/internal/cli"
	"github.com/martinohmann/dts/internal/exit"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dts:", err)
		return exit.CodeUsage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := cli.New(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := r.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "dts:", err)
		return exit.Code(err)
	}
	return exit.CodeOK
}
