package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aapnaincom/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "ledger_changes", cfg.Sync.Channel)
	assert.Equal(t, []string{"localhost"}, cfg.Auth.AuthorizedDomains)
	assert.Equal(t, "./exports", cfg.App.ExportDir)
	assert.Empty(t, cfg.Auth.FederatedSecret)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "ledger_test")
	t.Setenv("AUTH_AUTHORIZED_DOMAINS", "localhost,app.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"localhost", "app.example.com"}, cfg.Auth.AuthorizedDomains)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "postgres://postgres:@localhost:5432/ledger_test?sslmode=disable", cfg.ConnectionString())
}
