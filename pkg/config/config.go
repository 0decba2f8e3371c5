// Package config loads the portioning service's runtime settings from
// a YAML file, environment variables and built-in defaults, using
// viper the way the rest of the stack does.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the fully resolved configuration for a running
// portioning-service process.
type Config struct {
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`

	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Kafka    KafkaConfig    `json:"kafka"`

	Pricing PricingConfig `json:"pricing"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig is the Postgres connection used by the catalogue and
// config-store repositories.
type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// DSN renders the Postgres connection string lib/pq expects.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

// RedisConfig is the cache-aside layer's connection settings.
type RedisConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Password     string        `json:"password"`
	DB           int           `json:"db"`
	PoolSize     int           `json:"pool_size"`
	CatalogueTTL time.Duration `json:"catalogue_ttl"`
}

// Addr renders host:port for go-redis.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig is the audit publisher's broker settings.
type KafkaConfig struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}

// PricingConfig holds the price-check rounding step used when the
// pricing_config table holds no row.
type PricingConfig struct {
	DefaultRoundingStep float64 `json:"default_rounding_step"`
}

// Loader wraps a viper.Viper configured for the portioning service's
// config file name, search paths and environment prefix.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with the service's defaults set.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range []string{".", "./config", "/etc/portioning"} {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix("PORTIONING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portioning")
	v.SetDefault("database.user", "portioning")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "300s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.catalogue_ttl", "5m")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "portioning.audits")

	v.SetDefault("pricing.default_rounding_step", 1)
}

// Load reads the config file (if present), overlays environment
// variables, and unmarshals into a Config. A missing config file is
// not an error — defaults and environment variables still apply.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// WatchReload re-unmarshals the config on every file change and hands
// the new value to onChange. Errors during reload are passed to
// onError instead of being returned, since this runs in the
// background for the lifetime of the process.
func (l *Loader) WatchReload(onChange func(*Config), onError func(error)) {
	l.v.WatchConfig()
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := l.v.Unmarshal(&cfg); err != nil {
			onError(fmt.Errorf("unmarshaling reloaded config: %w", err))
			return
		}
		onChange(&cfg)
	})
}
