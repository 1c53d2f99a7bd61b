package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines dashboard client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Cache   CacheConfig   `yaml:"cache"`
	Blob    BlobConfig    `yaml:"blob"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Sentry  SentryConfig  `yaml:"sentry"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	AuthTimeout time.Duration `yaml:"auth_timeout"`
	// Offline disables the remote API; stores serve their built-in data.
	Offline bool `yaml:"offline"`
}

type AuthConfig struct {
	DemoAccounts bool `yaml:"demo_accounts"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
}

type BlobConfig struct {
	Driver string   `yaml:"driver"`
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

type ServerConfig struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000/api",
			Timeout:     5 * time.Second,
			AuthTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			DemoAccounts: true,
		},
		Cache: CacheConfig{
			Path: "pmdash.db",
		},
		Blob: BlobConfig{
			Driver: "memory",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8090,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PMDASH_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks enumerated options.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid server transport %q", c.Server.Transport)
	}
	switch c.Blob.Driver {
	case "memory", "s3":
	default:
		return fmt.Errorf("invalid blob driver %q", c.Blob.Driver)
	}
	if c.Blob.Driver == "s3" && c.Blob.S3.Bucket == "" {
		return fmt.Errorf("blob.s3.bucket required for s3 driver")
	}
	if c.API.Timeout <= 0 || c.API.AuthTimeout <= 0 {
		return fmt.Errorf("api timeouts must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PMDASH_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if err := envDuration("PMDASH_API_TIMEOUT", &cfg.API.Timeout); err != nil {
		return err
	}
	if err := envDuration("PMDASH_AUTH_TIMEOUT", &cfg.API.AuthTimeout); err != nil {
		return err
	}
	if err := envBool("PMDASH_OFFLINE", &cfg.API.Offline); err != nil {
		return err
	}
	if err := envBool("PMDASH_DEMO_ACCOUNTS", &cfg.Auth.DemoAccounts); err != nil {
		return err
	}
	if v := os.Getenv("PMDASH_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("PMDASH_BLOB_DRIVER"); v != "" {
		cfg.Blob.Driver = v
	}
	if v := os.Getenv("PMDASH_BLOB_S3_BUCKET"); v != "" {
		cfg.Blob.S3.Bucket = v
	}
	if v := os.Getenv("PMDASH_BLOB_S3_REGION"); v != "" {
		cfg.Blob.S3.Region = v
	}
	if v := os.Getenv("PMDASH_BLOB_S3_ENDPOINT"); v != "" {
		cfg.Blob.S3.Endpoint = v
	}
	if err := envBool("PMDASH_BLOB_S3_PATH_STYLE", &cfg.Blob.S3.PathStyle); err != nil {
		return err
	}
	if v := os.Getenv("PMDASH_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("PMDASH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if portStr := os.Getenv("PMDASH_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PMDASH_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("PMDASH_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("PMDASH_SENTRY_DSN"); v != "" {
		cfg.Sentry.DSN = v
	}
	if v := os.Getenv("PMDASH_SENTRY_ENVIRONMENT"); v != "" {
		cfg.Sentry.Environment = v
	}
	if v := os.Getenv("PMDASH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
