// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
	"github.com/suprilp8221/Store-Rating-Platform/internal/config"
	"github.com/suprilp8221/Store-Rating-Platform/internal/memdb"
	"github.com/suprilp8221/Store-Rating-Platform/internal/policy"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

func TestKeygenWritesUsableKeys(t *testing.T) {
	dir := t.TempDir()
	private := filepath.Join(dir, "keys", "private.pem")
	public := filepath.Join(dir, "keys", "public.pem")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"keygen", "--private", private, "--public", public})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), private)

	m, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath: private,
		PublicKeyPath:  public,
		Issuer:         "store-rating",
		Audience:       "store-rating-api",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.GetKeyID())

	rootCmd.SetArgs([]string{"keygen", "--private", private, "--public", public})
	assert.ErrorContains(t, rootCmd.Execute(), "already exists")
}

func TestCreateAdmin(t *testing.T) {
	svc := user.NewService(memdb.New().Users(), nil)

	flagAdminName = "Root Operator"
	flagAdminEmail = "Root@Example.com"
	flagAdminAddress = ""
	flagAdminPassword = ""
	t.Setenv(adminPasswordEnv, "Abcdef1!")

	created, err := createAdmin(context.Background(), svc)
	require.NoError(t, err)
	assert.Equal(t, policy.RoleAdmin, created.Role)
	assert.Equal(t, "root@example.com", created.Email)

	flagAdminName = "Root"
	flagAdminEmail = "second@example.com"
	_, err = createAdmin(context.Background(), svc)
	assert.EqualError(t, err, "name must be at least 8 characters")
}
