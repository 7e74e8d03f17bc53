// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/suprilp8221/Store-Rating-Platform/internal/config"
	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "store-rating-admin",
	Short: "Operator tooling for the store rating platform",
	Long: `Operator tooling for the store rating platform.

  store-rating-admin migrate up         Apply pending schema migrations
  store-rating-admin keygen             Write a fresh ES256 signing key pair
  store-rating-admin create-admin ...   Provision a System Administrator`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDatabase loads config and connects. Callers own the returned handle.
func openDatabase(ctx context.Context) (*core.Database, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	return core.NewDatabase(ctx, cfg.Database)
}
