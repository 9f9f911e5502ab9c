package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/stylelint-loader/internal/cli"
	"github.com/arthur-debert/stylelint-loader/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, styles.Render(styles.Error, fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(1)
	}
}
