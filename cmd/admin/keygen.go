// AngelaMos | 2026
// keygen.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
)

var (
	flagPrivateKey string
	flagPublicKey  string
	flagForce      bool
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the ES256 key pair used to sign access tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagForce {
			for _, path := range []string{flagPrivateKey, flagPublicKey} {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, pass --force to overwrite", path)
				}
			}
		}

		for _, path := range []string{flagPrivateKey, flagPublicKey} {
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return fmt.Errorf("create key directory: %w", err)
			}
		}

		if err := auth.GenerateKeyPair(flagPrivateKey, flagPublicKey); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", flagPrivateKey, flagPublicKey)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&flagPrivateKey, "private", "keys/private.pem", "private key output path")
	keygenCmd.Flags().StringVar(&flagPublicKey, "public", "keys/public.pem", "public key output path")
	keygenCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite existing keys")
	rootCmd.AddCommand(keygenCmd)
}
