package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, "frontend", cfg.Server.StaticDir)
	assert.Equal(t, 15*time.Second, cfg.MealDB.Timeout)
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.MealDB.BaseURL)
	assert.Equal(t, BackendMemory, cfg.Favorites.Backend)
	assert.Equal(t, "mykitchen-v1", cfg.Cache.Name)
	assert.Equal(t, []string{"Seafood", "Chicken", "Beef", "Vegetarian", "Dessert"}, cfg.Site.Categories)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestPrefixedEnvWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MYKITCHEN_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mykitchen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  url: https://mykitchen.example
  categories: [Pasta, Soup]
favorites:
  backend: redis
  redis_addr: redis:6379
cache:
  name: mykitchen-v2
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://mykitchen.example", cfg.Site.URL)
	assert.Equal(t, []string{"Pasta", "Soup"}, cfg.Site.Categories)
	assert.Equal(t, BackendRedis, cfg.Favorites.Backend)
	assert.Equal(t, "redis:6379", cfg.Favorites.RedisAddr)
	assert.Equal(t, "mykitchen-v2", cfg.Cache.Name)
}

func TestLoadEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("MYKITCHEN_FAVORITES_BACKEND", "firestore")
	t.Setenv("MYKITCHEN_FAVORITES_FIRESTORE_PROJECT", "mykitchen-prod")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.Favorites.Backend)
	assert.Equal(t, "mykitchen-prod", cfg.Favorites.FirestoreProject)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 4000},
			Site:      SiteConfig{URL: "https://mykitchen.example"},
			Favorites: FavoritesConfig{Backend: BackendMemory},
			Cache:     CacheConfig{Name: "mykitchen-v1"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"no site url", func(c *Config) { c.Site.URL = "" }, "site.url"},
		{"no cache name", func(c *Config) { c.Cache.Name = "" }, "cache.name"},
		{"unknown backend", func(c *Config) { c.Favorites.Backend = "mongo" }, "unknown favorites.backend"},
		{"firestore without project", func(c *Config) { c.Favorites.Backend = BackendFirestore }, "firestore_project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
