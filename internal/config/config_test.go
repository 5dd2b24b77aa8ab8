package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: "  secret  "
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.Equal(t, "secret", cfg.TMDB.APIKey)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	require.NotNil(t, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL.Details)
	assert.Equal(t, 4*time.Hour, cfg.Cache.TTL.Listing)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Discover)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `listen: "127.0.0.1:9000"`)
	t.Setenv("TMDB_API_KEY", "legacy-key")
	t.Setenv("REELCACHE_API_KEY", "admin")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "legacy-key", cfg.TMDB.APIKey)
	assert.True(t, cfg.AdminEnabled())
}

func TestLoadOverridesTTL(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: key
  base_url: "https://tmdb.example.com/3/"
cache:
  ttl:
    details: 30m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL.Details)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL.Credits)
	assert.Equal(t, "https://tmdb.example.com/3", cfg.TMDB.BaseURL)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name: "missing tmdb api key",
			cfg: &Config{
				Listen: ":8080",
				TMDB:   &TMDBConfig{BaseURL: "https://api.themoviedb.org/3", Timeout: time.Second},
			},
			wantErr: true,
		},
		{
			name: "redis without url",
			cfg: &Config{
				Listen: ":8080",
				TMDB:   &TMDBConfig{APIKey: "k", BaseURL: "https://api.themoviedb.org/3", Timeout: time.Second},
				Cache:  &CacheConfig{Type: CacheTypeRedis},
			},
			wantErr: true,
		},
		{
			name: "unknown cache type",
			cfg: &Config{
				Listen: ":8080",
				TMDB:   &TMDBConfig{APIKey: "k", BaseURL: "https://api.themoviedb.org/3", Timeout: time.Second},
				Cache:  &CacheConfig{Type: "memcached"},
			},
			wantErr: true,
		},
		{
			name: "invalid cron",
			cfg: &Config{
				Listen:               ":8080",
				GenreRefreshSchedule: "every day",
				TMDB:                 &TMDBConfig{APIKey: "k", BaseURL: "https://api.themoviedb.org/3", Timeout: time.Second},
			},
			wantErr: true,
		},
		{
			name: "nil cache falls back to memory",
			cfg: &Config{
				Listen: ":8080",
				TMDB:   &TMDBConfig{APIKey: "k", BaseURL: "https://api.themoviedb.org/3", Timeout: time.Second},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CacheTypeMemory, tt.cfg.Cache.Type)
			assert.NotNil(t, tt.cfg.Cache.TTL)
		})
	}
}
