package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server   ServerConfig `mapstructure:"server"`
	DB       DBConfig     `mapstructure:"db"`
	Redis    RedisConfig  `mapstructure:"redis"`
	Auth     AuthConfig   `mapstructure:"auth"`
	Log      LogConfig    `mapstructure:"log"`
	Storage  string       `mapstructure:"storage"`
	Timezone string       `mapstructure:"timezone"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	// Driver is "pgx" (default) or "pq".
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	TimeZone        string        `mapstructure:"timezone"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// DSN builds the key/value connection string understood by both drivers.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

type RedisConfig struct {
	// Empty Addr disables caching.
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	Prefix    string        `mapstructure:"prefix"`
	ListTTL   time.Duration `mapstructure:"list_ttl"`
	ReportTTL time.Duration `mapstructure:"report_ttl"`
}

type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.driver", "pgx")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "reparto")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.slow_threshold", 200*time.Millisecond)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "reparto:")
	v.SetDefault("redis.list_ttl", time.Minute)
	v.SetDefault("redis.report_ttl", 5*time.Minute)

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.secret", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "./logs/app.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.stdout", true)

	v.SetDefault("storage", StoragePostgres)
	v.SetDefault("timezone", "UTC")
}

// legacyEnv keeps the plain variable names used by existing deployments working
// next to the REPARTO_ prefixed ones.
var legacyEnv = map[string]string{
	"db.host":     "DB_HOST",
	"db.port":     "DB_PORT",
	"db.user":     "DB_USER",
	"db.password": "DB_PASSWORD",
	"db.name":     "DB_NAME",
	"db.sslmode":  "DB_SSLMODE",
	"db.timezone": "DB_TIMEZONE",
	"auth.secret": "JWT_SECRET",
	"server.addr": "SERVER_ADDR",
	"redis.addr":  "REDIS_ADDR",
}

// Load reads .env, then the optional YAML file at path (or config.yaml in the
// working directory), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REPARTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		prefixed := "REPARTO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("./config/")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("storage must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	switch c.DB.Driver {
	case "pgx", "pq":
	default:
		return fmt.Errorf("db.driver must be \"pgx\" or \"pq\", got %q", c.DB.Driver)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return errors.New("auth.secret is required when auth is enabled")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone used to decide which calendar day "today" is.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
