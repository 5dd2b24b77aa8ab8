package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the reelcache server and its dependencies.
type Config struct {
	// Listen is the address the reelcache server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the default log level, the --log-level flag takes precedence.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// APIKey protects the admin endpoints. Admin endpoints are disabled if empty.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// GenreRefreshSchedule is the cron schedule used to reload the genre lookup cache.
	GenreRefreshSchedule string `yaml:"genre_refresh_schedule" mapstructure:"genre_refresh_schedule"`
	// TMDB holds the upstream provider configuration.
	TMDB *TMDBConfig `yaml:"tmdb" mapstructure:"tmdb"`
	// Cache holds the cache store configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// TMDBConfig holds the configuration for the TMDb API.
type TMDBConfig struct {
	// APIKey is the TMDb v3 API key.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL is the base URL of the TMDb API.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Language is sent with every request (e.g. "en-US").
	Language string `yaml:"language" mapstructure:"language"`
	// Timeout bounds every upstream request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig holds the configuration for the cache store.
type CacheConfig struct {
	// Type is the type of cache store to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server if using redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// RedisDB selects the redis database.
	RedisDB int `yaml:"redis_db" mapstructure:"redis_db"`
	// TTL holds the expiry per route family.
	TTL *TTLConfig `yaml:"ttl" mapstructure:"ttl"`
}

// TTLConfig holds the cache expiry for each family of cached routes.
type TTLConfig struct {
	Details    time.Duration `yaml:"details" mapstructure:"details"`
	Credits    time.Duration `yaml:"credits" mapstructure:"credits"`
	Keywords   time.Duration `yaml:"keywords" mapstructure:"keywords"`
	Collection time.Duration `yaml:"collection" mapstructure:"collection"`
	Listing    time.Duration `yaml:"listing" mapstructure:"listing"`
	Discover   time.Duration `yaml:"discover" mapstructure:"discover"`
	Seasons    time.Duration `yaml:"seasons" mapstructure:"seasons"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults and environment variables are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	// bind nested keys, viper's AutomaticEnv does not see them otherwise
	bindNestedEnv(v)

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("REELCACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reelcache")
		v.AddConfigPath("/etc/reelcache")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_key", "")
	v.SetDefault("genre_refresh_schedule", "0 4 * * *") // daily at 04:00

	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", 10*time.Second)

	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl.details", 2*time.Hour)
	v.SetDefault("cache.ttl.credits", 24*time.Hour)
	v.SetDefault("cache.ttl.keywords", 24*time.Hour)
	v.SetDefault("cache.ttl.collection", 24*time.Hour)
	v.SetDefault("cache.ttl.listing", 4*time.Hour)
	v.SetDefault("cache.ttl.discover", time.Hour)
	v.SetDefault("cache.ttl.seasons", 24*time.Hour)
}

// bindNestedEnv binds environment variables for nested keys.
// The unprefixed names are the ones older deployments used.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("tmdb.api_key", "REELCACHE_TMDB_API_KEY", "TMDB_API_KEY")
	v.MustBindEnv("tmdb.base_url", "REELCACHE_TMDB_BASE_URL")
	v.MustBindEnv("tmdb.language", "REELCACHE_TMDB_LANGUAGE")

	v.MustBindEnv("cache.type", "REELCACHE_CACHE_TYPE")
	v.MustBindEnv("cache.redis_url", "REELCACHE_CACHE_REDIS_URL", "REDIS_URL")
	v.MustBindEnv("cache.redis_db", "REELCACHE_CACHE_REDIS_DB", "REDIS_DB")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing reelcache config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.GenreRefreshSchedule != "" && len(strings.Fields(c.GenreRefreshSchedule)) != 5 {
		return fmt.Errorf("genre refresh schedule must be a valid cron expression with 5 fields (minute hour day month weekday)")
	}

	if c.TMDB == nil {
		return fmt.Errorf("missing tmdb config")
	}
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb API key is required")
	}
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb base URL is required")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb timeout must be greater than 0")
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required")
		}
		if c.Cache.Type != CacheTypeMemory && c.Cache.Type != CacheTypeRedis {
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
		}
	}

	if c.Cache.TTL == nil {
		c.Cache.TTL = DefaultTTL()
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.APIKey = strings.TrimSpace(c.APIKey)

	if c.TMDB != nil {
		c.TMDB.BaseURL = urlSanitize(c.TMDB.BaseURL)
		c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	}

	if c.Cache != nil {
		c.Cache.RedisURL = urlSanitize(c.Cache.RedisURL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

// DefaultTTL returns the cache expiry used when no ttl section is configured.
func DefaultTTL() *TTLConfig {
	return &TTLConfig{
		Details:    2 * time.Hour,
		Credits:    24 * time.Hour,
		Keywords:   24 * time.Hour,
		Collection: 24 * time.Hour,
		Listing:    4 * time.Hour,
		Discover:   time.Hour,
		Seasons:    24 * time.Hour,
	}
}

// AdminEnabled reports whether the admin endpoints should be served.
func (c *Config) AdminEnabled() bool {
	return c.APIKey != ""
}
