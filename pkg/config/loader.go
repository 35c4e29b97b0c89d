// Package config loads the admin settings from an optional config.yaml, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit path; when empty config.yaml is searched in
	// ./configs and the working directory.
	ConfigFile string
	// EnvFiles are loaded before reading the environment. Missing files are
	// skipped. Defaults to ".env".
	EnvFiles []string
	// Demo forces the demo backend regardless of other settings.
	Demo bool
}

// Load reads the configuration.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by existing deployments.
	_ = v.BindEnv("app.environment", "ADMIN_APP_ENVIRONMENT", "APP_ENVIRONMENT", "MODE")
	_ = v.BindEnv("backend.url", "ADMIN_BACKEND_URL", "SUPABASE_URL", "VITE_SUPABASE_URL")
	_ = v.BindEnv("backend.anon_key", "ADMIN_BACKEND_ANON_KEY", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	_ = v.BindEnv("backend.database_url", "ADMIN_BACKEND_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("chat.webhook_url", "ADMIN_CHAT_WEBHOOK_URL", "N8N_WEBHOOK_URL", "VITE_N8N_WEBHOOK_URL")
	// No default: unset keeps the per-environment behavior.
	_ = v.BindEnv("chat.show_welcome_screen", "ADMIN_CHAT_SHOW_WELCOME_SCREEN")
	_ = v.BindEnv("session.redis_url", "ADMIN_SESSION_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("logging.level", "ADMIN_LOGGING_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("http.addr", "ADMIN_HTTP_ADDR", "HTTP_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	if opts.Demo {
		v.Set("backend.transport", BackendDemo)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "restaurant-admin")
	v.SetDefault("app.environment", "production")
	v.SetDefault("app.locale", "es")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("backend.transport", BackendPostgREST)
	v.SetDefault("backend.schema", "public")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.demo_seed", 42)
	v.SetDefault("chat.mode", "window")
	v.SetDefault("chat.default_language", "es")
	v.SetDefault("chat.allow_file_uploads", false)
	v.SetDefault("chat.relay_timeout", "60s")
	v.SetDefault("session.store", SessionMemory)
	v.SetDefault("session.key_prefix", "restaurant-admin:")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("charts.enabled", true)
	v.SetDefault("charts.assets_host", "")
	v.SetDefault("charts.theme", "westeros")
	v.SetDefault("charts.cache_ttl", "1m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks settings that make startup impossible. A missing chat
// webhook is not one of them.
func (c *Config) Validate() error {
	switch c.Backend.Transport {
	case BackendPostgREST:
		if strings.TrimSpace(c.Backend.URL) == "" {
			return errors.New("config: backend.url is required for the postgrest transport (set SUPABASE_URL)")
		}
		if strings.TrimSpace(c.Backend.AnonKey) == "" {
			return errors.New("config: backend.anon_key is required for the postgrest transport (set SUPABASE_ANON_KEY)")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Backend.DatabaseURL) == "" {
			return errors.New("config: backend.database_url is required for the postgres transport (set DATABASE_URL)")
		}
	case BackendDemo:
	default:
		return fmt.Errorf("config: unknown backend transport %q", c.Backend.Transport)
	}

	switch c.Session.Store {
	case SessionMemory:
	case SessionRedis:
		if strings.TrimSpace(c.Session.RedisURL) == "" {
			return errors.New("config: session.redis_url is required for the redis store (set REDIS_URL)")
		}
	default:
		return fmt.Errorf("config: unknown session store %q", c.Session.Store)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}
