// AngelaMos | 2026
// migrate.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Run schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "version"},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, db.Close())
		}()

		if err := core.Migrate(ctx, db.DB.DB, args[0]); err != nil {
			return fmt.Errorf("migrate %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
