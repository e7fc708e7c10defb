// internal/adapters/in/cli/root.go
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appcfg "github.com/caerux/e-commerce-website/internal/infra/config"
	"github.com/caerux/e-commerce-website/internal/platform/di"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the storefront CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront cart CLI",
		Long:          "Manage the storefront shopping cart: login, add products, bulk import and checkout.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))

	return cmd
}

func newLogger(opts *RootOptions) (*zap.Logger, error) {
	if opts.Verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// newContainer builds the application graph for one command invocation.
func newContainer(ctx context.Context, opts *RootOptions) (*di.Container, *zap.Logger, error) {
	log, err := newLogger(opts)
	if err != nil {
		return nil, nil, err
	}
	c, err := di.NewContainer(ctx, appcfg.Load(), log)
	if err != nil {
		return nil, nil, err
	}
	return c, log, nil
}
