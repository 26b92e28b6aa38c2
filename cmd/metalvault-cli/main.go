package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/metalvault/metalvault/cmd/metalvault-cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
