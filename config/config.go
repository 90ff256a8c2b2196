package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Seed sources
const (
	SeedSourceBundled = "bundled"
	SeedSourceHTTP    = "http"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	Store  StoreConfig
	DB     DBConfig
	SQLite SQLiteConfig
	Redis  RedisConfig
	Seed   SeedConfig
	JWT    JWTConfig
}

type AppConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

type StoreConfig struct {
	Driver    string
	KeyPrefix string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SeedConfig struct {
	Source  string
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// LoadConfig reads configFile (usually .env) and the process environment.
// A missing config file is not an error; environment and defaults apply.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("STORE_KEY_PREFIX", "")
	v.SetDefault("SQLITE_PATH", "vr-therapy.db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SEED_SOURCE", SeedSourceBundled)
	v.SetDefault("JWT_SECRET", "change-me")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	seedTimeout, err := time.ParseDuration(v.GetString("SEED_TIMEOUT"))
	if err != nil {
		seedTimeout = 10 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Driver:    v.GetString("STORE_DRIVER"),
			KeyPrefix: v.GetString("STORE_KEY_PREFIX"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Seed: SeedConfig{
			Source:  v.GetString("SEED_SOURCE"),
			BaseURL: v.GetString("SEED_BASE_URL"),
			Timeout: seedTimeout,
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
	}

	return config, nil
}

// splitList parses a comma-separated setting, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
