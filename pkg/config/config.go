package config

import "time"

// Backend transports.
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendDemo      = "demo"
)

// Session stores.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Backend BackendConfig `mapstructure:"backend"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Session SessionConfig `mapstructure:"session"`
	Charts  ChartsConfig  `mapstructure:"charts"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Locale      string `mapstructure:"locale"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type BackendConfig struct {
	Transport   string        `mapstructure:"transport"`
	URL         string        `mapstructure:"url"`
	AnonKey     string        `mapstructure:"anon_key"`
	Schema      string        `mapstructure:"schema"`
	DatabaseURL string        `mapstructure:"database_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DemoSeed    int64         `mapstructure:"demo_seed"`
}

type ChatConfig struct {
	WebhookURL        string        `mapstructure:"webhook_url"`
	Mode              string        `mapstructure:"mode"`
	ShowWelcomeScreen *bool         `mapstructure:"show_welcome_screen"`
	AllowFileUploads  bool          `mapstructure:"allow_file_uploads"`
	DefaultLanguage   string        `mapstructure:"default_language"`
	RelayTimeout      time.Duration `mapstructure:"relay_timeout"`
}

type SessionConfig struct {
	Store     string        `mapstructure:"store"`
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type ChartsConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	AssetsHost string        `mapstructure:"assets_host"`
	Theme      string        `mapstructure:"theme"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Development reports whether the app runs in development mode.
func (c *Config) Development() bool {
	return c.App.Environment == "development"
}
