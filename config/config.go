// Package config loads settings from an optional config file, a .env file
// and the environment, using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	MealDB    MealDBConfig    `mapstructure:"mealdb"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	StaticDir       string        `mapstructure:"static_dir"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// SiteConfig describes the public site used in canonical URLs and the sitemap.
type SiteConfig struct {
	URL        string   `mapstructure:"url"`
	Name       string   `mapstructure:"name"`
	Author     string   `mapstructure:"author"`
	Categories []string `mapstructure:"categories"`
}

type MealDBConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FavoritesConfig struct {
	Backend             string `mapstructure:"backend"`
	FirestoreProject    string `mapstructure:"firestore_project"`
	FirestoreCollection string `mapstructure:"firestore_collection"`
	RedisAddr           string `mapstructure:"redis_addr"`
	RedisPassword       string `mapstructure:"redis_password"`
	RedisDB             int    `mapstructure:"redis_db"`
	RedisPrefix         string `mapstructure:"redis_prefix"`
}

// CacheConfig versions the browser cache. Changing Name drops every
// previously cached entry when the new service worker activates.
type CacheConfig struct {
	Name string `mapstructure:"name"`
}

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendRedis     = "redis"
)

// Load reads configuration. A missing config file or .env file is fine.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MYKITCHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the conventional override on hosting platforms.
	_ = v.BindEnv("server.port", "MYKITCHEN_SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "MyKitchen")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.port", 4000)
	v.SetDefault("server.static_dir", "frontend")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("site.url", "https://youractualwebsite.com")
	v.SetDefault("site.name", "MyKitchen")
	v.SetDefault("site.author", "MyKitchen Team")
	v.SetDefault("site.categories", []string{"Seafood", "Chicken", "Beef", "Vegetarian", "Dessert"})

	v.SetDefault("mealdb.base_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("mealdb.timeout", "15s")

	v.SetDefault("favorites.backend", BackendMemory)
	v.SetDefault("favorites.firestore_project", "")
	v.SetDefault("favorites.firestore_collection", "favorites")
	v.SetDefault("favorites.redis_addr", "localhost:6379")
	v.SetDefault("favorites.redis_password", "")
	v.SetDefault("favorites.redis_db", 0)
	v.SetDefault("favorites.redis_prefix", "mykitchen:favorites:")

	v.SetDefault("cache.name", "mykitchen-v1")
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Site.URL == "" {
		return fmt.Errorf("site.url is required")
	}
	if c.Cache.Name == "" {
		return fmt.Errorf("cache.name is required")
	}

	switch c.Favorites.Backend {
	case BackendMemory, BackendRedis:
	case BackendFirestore:
		if c.Favorites.FirestoreProject == "" {
			return fmt.Errorf("favorites.firestore_project is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown favorites.backend %q", c.Favorites.Backend)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
