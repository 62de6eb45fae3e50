package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yunisnasibov/e-ticaret-12/internal/fakestore"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Catalog
	Catalog           string        `yaml:"catalog"`
	APIBaseURL        string        `yaml:"api_base_url"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	CategoriesTimeout time.Duration `yaml:"categories_timeout"`

	// Storage
	StorageDriver string `yaml:"storage_driver"` // "file", "redis", "memory"
	DataDir       string `yaml:"data_dir"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`

	// Rate limiting
	RatePerSecond float64 `yaml:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst"`
	MaxConcurrent int     `yaml:"max_concurrent"`

	// Transport
	RespectRobots bool   `yaml:"respect_robots"`
	ProxyURL      string `yaml:"proxy_url"`
	UserAgent     string `yaml:"user_agent"`

	// Shop
	DefaultCountry string `yaml:"default_country"`
	Currency       string `yaml:"currency"`

	// HTTP server
	HTTPPort string `yaml:"http_port"`
	APIKey   string `yaml:"api_key"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog:           "fakestore",
		APIBaseURL:        fakestore.DefaultBaseURL,
		FetchTimeout:      fakestore.DefaultTimeout,
		CategoriesTimeout: fakestore.DefaultCategoriesTimeout,
		StorageDriver:     "file",
		DataDir:           defaultDataDir(),
		RedisAddr:         "localhost:6379",
		RedisPrefix:       "e-ticaret:",
		RatePerSecond:     5.0,
		RateBurst:         5,
		MaxConcurrent:     4,
		RespectRobots:     false,
		DefaultCountry:    "Türkiye",
		Currency:          "TL",
		HTTPPort:          "8080",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".e-ticaret"
	}
	return filepath.Join(home, ".e-ticaret")
}

// LoadFile overrides config from a YAML file. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("STORE_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("STORE_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("STORE_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("STORE_CATEGORIES_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CategoriesTimeout = d
		}
	}
	if v := os.Getenv("STORE_STORAGE"); v != "" {
		c.StorageDriver = v
	}
	if v := os.Getenv("STORE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STORE_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("STORE_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("STORE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("STORE_REDIS_PREFIX"); v != "" {
		c.RedisPrefix = v
	}
	if v := os.Getenv("STORE_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("STORE_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("STORE_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("STORE_RESPECT_ROBOTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RespectRobots = b
		}
	}
	if v := os.Getenv("STORE_PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
	if v := os.Getenv("STORE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("STORE_DEFAULT_COUNTRY"); v != "" {
		c.DefaultCountry = v
	}
	if v := os.Getenv("STORE_CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("STORE_API_KEY"); v != "" {
		c.APIKey = v
	}
}
