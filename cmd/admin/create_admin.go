// AngelaMos | 2026
// create_admin.go

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

const adminPasswordEnv = "ADMIN_PASSWORD"

var (
	flagAdminName     string
	flagAdminEmail    string
	flagAdminPassword string
	flagAdminAddress  string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a System Administrator account",
	Long: `Create a System Administrator account. Signup never grants this role,
so the first administrator has to be provisioned here. The password may be
passed with --password or through the ADMIN_PASSWORD environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, db.Close())
		}()

		svc := user.NewService(user.NewRepository(db.DB), nil)
		created, err := createAdmin(ctx, svc)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s <%s> id=%s\n", created.Role, created.Email, created.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&flagAdminName, "name", "", "display name (8-20 characters)")
	createAdminCmd.Flags().StringVar(&flagAdminEmail, "email", "", "login email")
	createAdminCmd.Flags().StringVar(&flagAdminPassword, "password", "", "password (or $"+adminPasswordEnv+")")
	createAdminCmd.Flags().StringVar(&flagAdminAddress, "address", "", "optional address")
	_ = createAdminCmd.MarkFlagRequired("name")  //nolint:errcheck // flag is defined above
	_ = createAdminCmd.MarkFlagRequired("email") //nolint:errcheck // flag is defined above
	rootCmd.AddCommand(createAdminCmd)
}

type userCreator interface {
	CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserResponse, error)
}

func createAdmin(ctx context.Context, users userCreator) (*user.UserResponse, error) {
	password := flagAdminPassword
	if password == "" {
		password = os.Getenv(adminPasswordEnv)
	}

	req := user.CreateUserRequest{
		Name:     flagAdminName,
		Email:    flagAdminEmail,
		Password: password,
		Role:     string(policy.RoleAdmin),
	}
	if flagAdminAddress != "" {
		req.Address = &flagAdminAddress
	}

	created, err := users.CreateUser(ctx, req)
	if err != nil {
		if messages := core.ValidationMessages(err); len(messages) > 0 {
			return nil, errors.New(strings.Join(messages, "; "))
		}
		return nil, err
	}
	return created, nil
}
