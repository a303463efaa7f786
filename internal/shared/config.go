package shared

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Selected fields may be overridden by PLANTX_* environment variables, see [ApplyEnv].
type Config struct {
	API      APIConfig      `toml:"api"`
	Session  SessionConfig  `toml:"session"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig contains settings for the plant exchange backend.
type APIConfig struct {
	BaseURL           string  `toml:"base_url" env:"PLANTX_BASE_URL, overwrite"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	LikesConcurrency  int     `toml:"likes_concurrency"`
}

// SessionConfig controls where the bearer credential is persisted.
type SessionConfig struct {
	TokenKey string `toml:"token_key"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"PLANTX_DB_PATH, overwrite"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the development backend.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port" env:"PLANTX_SERVER_PORT, overwrite"`
	JWTSecret       string `toml:"jwt_secret" env:"PLANTX_JWT_SECRET, overwrite"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"PLANTX_LOG_LEVEL, overwrite"`
	File  string `toml:"file"`
}

// Timeout returns the HTTP client timeout.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Addr returns the listen address for the development backend.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TokenTTL returns the lifetime of tokens issued by the development backend.
func (c ServerConfig) TokenTTL() time.Duration {
	if c.TokenTTLMinutes <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overlays PLANTX_* environment variables onto config.
//
// Unset variables leave the loaded values untouched.
func ApplyEnv(ctx context.Context, config *Config) error {
	if err := envconfig.Process(ctx, config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnvFrom is [ApplyEnv] with an explicit variable lookup, used in tests.
func ApplyEnvFrom(ctx context.Context, config *Config, vars map[string]string) error {
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   config,
		Lookuper: envconfig.MapLookuper(vars),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
