package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "billing-db.internal")
	t.Setenv("DB_SERVICE", "INCMS")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("KPLC_CLIENT_ID", "client-id")
	t.Setenv("KPLC_TLS_INSECURE", "true")

	cfg := Load()

	assert.Equal(t, "billing-db.internal", cfg.Database.Host)
	assert.Equal(t, "INCMS", cfg.Database.Service)
	assert.Equal(t, "1521", cfg.Database.Port)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, "client-id", cfg.KPLC.ClientID)
	assert.Equal(t, "https://selfservice.kplc.co.ke/api", cfg.KPLC.BaseURL)
	assert.Equal(t, "nuru_docs_private", cfg.KPLC.Scope)
	assert.True(t, cfg.KPLC.TLSInsecure)
}

func TestLoadDefaultsAreSafe(t *testing.T) {
	t.Setenv("KPLC_TLS_INSECURE", "")

	cfg := Load()

	// TLS verification must stay enabled unless explicitly opted out.
	assert.False(t, cfg.KPLC.TLSInsecure)
	// No credential defaults.
	assert.Empty(t, cfg.KPLC.ClientSecret)
	assert.Empty(t, cfg.Database.Password)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestLoadAccounts(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accounts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - \"100200300\"\n  - \" 100200301 \"\n  - \"\"\n"), 0o644))

		accounts, err := LoadAccounts(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"100200300", "100200301"}, accounts)
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accounts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: []\n"), 0o644))

		_, err := LoadAccounts(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAccounts(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accounts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: [unclosed"), 0o644))

		_, err := LoadAccounts(path)
		assert.Error(t, err)
	})
}
