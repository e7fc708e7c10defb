// cmd/storefront/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/caerux/e-commerce-website/internal/adapters/in/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
