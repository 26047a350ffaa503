package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/ironsheep/tessbridge/internal/cli"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := fang.Execute(ctx, cli.NewRootCmd(), fang.WithVersion(Version))
	stop()
	os.Exit(cli.ExitCode(err))
}
