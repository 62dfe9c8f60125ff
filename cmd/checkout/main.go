package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-gin-checkout/internal/app/checkout"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts checkout.LoadOptions
	root := &cobra.Command{
		Use:           "checkout",
		Short:         "Cart store and checkout order summary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default checkout.{toml,yaml} in . or /etc/checkout)")
	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	withConfig := func(run func(context.Context, checkout.Config) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := checkout.LoadConfig(opts)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cmd.Context(), cfg)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the product grid, checkout page, and cart API over HTTP",
			Args:  cobra.NoArgs,
			RunE:  withConfig(checkout.Serve),
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Run the checkout in the terminal",
			Args:  cobra.NoArgs,
			RunE:  withConfig(checkout.RunTUI),
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the postgres schema migrations",
			Args:  cobra.NoArgs,
			RunE:  withConfig(checkout.Migrate),
		},
	)
	return root
}
