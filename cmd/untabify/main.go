package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/salmonumbrella/untabify/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
