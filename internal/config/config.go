package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Env            string       `toml:"env"`
	LogLevel       string       `toml:"log_level"`
	LogFile        string       `toml:"log_file"`
	Addr           string       `toml:"addr"`
	StorageBackend string       `toml:"storage_backend"` // file, sqlite, postgres, memory
	DataFile       string       `toml:"data_file"`
	SQLitePath     string       `toml:"sqlite_path"`
	PostgresDSN    string       `toml:"postgres_dsn"`
	AuthServiceURL string       `toml:"auth_service_url"`
	Users          []UserConfig `toml:"users"`
}

// UserConfig is a local account accepted in development.
type UserConfig struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Token string `toml:"token"`
}

var (
	cfg  *Config
	once sync.Once
)

func DefaultConfig() Config {
	return Config{
		Env:            "development",
		LogLevel:       "info",
		Addr:           ":8088",
		StorageBackend: "file",
		DataFile:       "data/timebalance.json",
		SQLitePath:     "data/timebalance.db",
		Users: []UserConfig{
			{ID: "u1", Name: "Demo User", Token: "MOCK-TOKEN"},
		},
	}
}

// Load returns the process-wide configuration. The TOML file named by
// TIMEBALANCE_CONFIG is optional.
func Load() *Config {
	once.Do(func() {
		c, err := LoadFrom(os.Getenv("TIMEBALANCE_CONFIG"))
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

// LoadFrom layers defaults, the TOML file at path (skipped when path is
// empty or missing) and environment overrides, then validates.
func LoadFrom(path string) (*Config, error) {
	c := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			defaultUsers := c.Users
			c.Users = nil
			if err := toml.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
			if len(c.Users) == 0 {
				c.Users = defaultUsers
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	applyEnvOverrides(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "file":
		if c.DataFile == "" {
			return errors.New("file storage requires DATA_FILE to be set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("sqlite storage requires SQLITE_PATH to be set")
		}
	case "memory":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: file, sqlite, postgres, memory (got %q)", c.StorageBackend)
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	for _, u := range c.Users {
		if u.ID == "" || u.Token == "" {
			return errors.New("every configured user needs an id and a token")
		}
	}
	return nil
}

func applyEnvOverrides(c *Config) {
	c.Env = getEnv("APP_ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.Addr = getEnv("HTTP_ADDR", c.Addr)
	c.StorageBackend = getEnv("STORAGE_BACKEND", c.StorageBackend)
	c.DataFile = getEnv("DATA_FILE", c.DataFile)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.PostgresDSN = getEnv("POSTGRES_DSN", c.PostgresDSN)
	c.AuthServiceURL = getEnv("AUTH_SERVICE_URL", c.AuthServiceURL)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
