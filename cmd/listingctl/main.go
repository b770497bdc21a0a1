package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"listing_editor/internal/cli"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrInvalidDraft) {
			fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		}
		stop()
		os.Exit(1)
	}
}
