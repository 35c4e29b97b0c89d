package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SUPABASE_URL", "VITE_SUPABASE_URL", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY",
		"N8N_WEBHOOK_URL", "VITE_N8N_WEBHOOK_URL", "DATABASE_URL", "REDIS_URL",
		"LOG_LEVEL", "APP_ENVIRONMENT", "MODE", "HTTP_ADDR",
		"ADMIN_BACKEND_TRANSPORT", "ADMIN_BACKEND_URL", "ADMIN_BACKEND_ANON_KEY",
		"ADMIN_SESSION_STORE", "ADMIN_CHAT_WEBHOOK_URL", "ADMIN_APP_ENVIRONMENT",
		"ADMIN_CHAT_SHOW_WELCOME_SCREEN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDemoDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_BACKEND_TRANSPORT", "demo")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, BackendDemo, cfg.Backend.Transport)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "es", cfg.App.Locale)
	assert.Equal(t, SessionMemory, cfg.Session.Store)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Minute, cfg.Charts.CacheTTL)
	assert.Empty(t, cfg.Chat.WebhookURL)
	assert.False(t, cfg.Development())
}

func TestLoadLegacyEnvironmentNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("N8N_WEBHOOK_URL", "https://n8n.example.com/webhook/abc/chat")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MODE", "development")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, BackendPostgREST, cfg.Backend.Transport)
	assert.Equal(t, "https://project.supabase.co", cfg.Backend.URL)
	assert.Equal(t, "anon", cfg.Backend.AnonKey)
	assert.Equal(t, "https://n8n.example.com/webhook/abc/chat", cfg.Chat.WebhookURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Development())
}

func TestLoadChatWelcomeScreenFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_BACKEND_TRANSPORT", "demo")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Nil(t, cfg.Chat.ShowWelcomeScreen)

	t.Setenv("ADMIN_CHAT_SHOW_WELCOME_SCREEN", "false")
	cfg, err = Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)
	require.NotNil(t, cfg.Chat.ShowWelcomeScreen)
	assert.False(t, *cfg.Chat.ShowWelcomeScreen)

	t.Setenv("ADMIN_CHAT_SHOW_WELCOME_SCREEN", "true")
	cfg, err = Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)
	require.NotNil(t, cfg.Chat.ShowWelcomeScreen)
	assert.True(t, *cfg.Chat.ShowWelcomeScreen)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ADMIN_BACKEND_TRANSPORT=postgres\nDATABASE_URL=postgres://localhost/admin\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ADMIN_BACKEND_TRANSPORT")
		os.Unsetenv("DATABASE_URL")
	})

	cfg, err := Load(Options{EnvFiles: []string{envFile, filepath.Join(dir, "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Backend.Transport)
	assert.Equal(t, "postgres://localhost/admin", cfg.Backend.DatabaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	body := `
backend:
  transport: demo
http:
  addr: ":9090"
session:
  store: memory
  ttl: 1h
charts:
  enabled: false
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))

	cfg, err := Load(Options{ConfigFile: file, EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Charts.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"), EnvFiles: []string{}})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Backend: BackendConfig{Transport: BackendDemo},
			Session: SessionConfig{Store: SessionMemory},
			Logging: LoggingConfig{Format: "json"},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Backend.Transport = BackendPostgREST
	assert.ErrorContains(t, cfg.Validate(), "SUPABASE_URL")

	cfg = base()
	cfg.Backend.Transport = BackendPostgres
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = base()
	cfg.Session.Store = SessionRedis
	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")

	cfg = base()
	cfg.Backend.Transport = "grpc"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestLoadDemoOverridesTransport(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_BACKEND_TRANSPORT", "postgrest")

	cfg, err := Load(Options{EnvFiles: []string{}, Demo: true})
	require.NoError(t, err)
	assert.Equal(t, BackendDemo, cfg.Backend.Transport)
}
