package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "BINGO"

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Host     *HostConfig     `mapstructure:"host"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	LogLevel           string   `mapstructure:"log_level"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	JWTExpiryHours     int      `mapstructure:"jwt_expiry_hours"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// RedisConfig enables the session snapshot cache when URL is set.
type RedisConfig struct {
	URL        string `mapstructure:"url"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// StorageConfig selects the repository backing: "postgres" or "memory".
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// HostConfig is the account seeded at startup.
type HostConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.environment", "development")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_expiry_hours", 24)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "bingo")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl_seconds", 3600)
	v.SetDefault("storage.driver", StoragePostgres)
	v.SetDefault("host.username", "master")
	v.SetDefault("host.password", "")

	return v
}

// Load reads the YAML file at path. BINGO_* environment variables override
// file values, e.g. BINGO_API_PORT for api.port.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

// Watch calls onChange with the reloaded config whenever the file at path
// is written.
func Watch(path string, onChange func(*AppConfig, error)) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		onChange(nil, fmt.Errorf("v.ReadInConfig -> %w", err))
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if c.Host.Password == "" {
		return fmt.Errorf("host.password is required")
	}
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}
