package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// PublicBaseURL prefixes the display urls of cached media, e.g. http://localhost:9000
	PublicBaseURL string `toml:"public_base_url"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// redis, used by the redis metadata backend and by the api rate limiter
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres, only used by the postgres metadata backend
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// metadata store
	MetadataBackend    string   `toml:"metadata_backend"`
	MetadataSQLitePath string   `toml:"metadata_sqlite_path"`
	MetadataMemoSizeMB int      `toml:"metadata_memo_size_mb"`
	MetadataTTL        Duration `toml:"metadata_ttl"`

	// asset cache
	AssetBackend  string `toml:"asset_backend"`
	AssetDir      string `toml:"asset_dir"`
	MaxAssetBytes int64  `toml:"max_asset_bytes"`
	MaxRefs       int    `toml:"max_refs"`

	// catalog and connectivity
	CatalogBaseURL           string   `toml:"catalog_base_url"`
	CatalogTimeout           Duration `toml:"catalog_timeout"`
	CatalogRequestsPerSecond float64  `toml:"catalog_requests_per_second"`
	OfflineMode              bool     `toml:"offline_mode"`
	ConnectivityCacheTTL     Duration `toml:"connectivity_cache_ttl"`
	ThumbnailFallback        bool     `toml:"thumbnail_fallback"`

	// requests per minute per client ip on the demo api, 0 disables it
	RateLimitAllowedPerMin int `toml:"rate_limit_allowed_per_min"`
}

// Duration reads TOML strings like "8s" or "720h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file and returns the config of the given environment
// with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = fmt.Sprintf("http://%s:%d", c.Host, c.Port)
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.MetadataBackend == "" {
		c.MetadataBackend = "sqlite"
	}
	if c.MetadataSQLitePath == "" {
		c.MetadataSQLitePath = "./data/demos.db"
	}
	if c.AssetBackend == "" {
		c.AssetBackend = "disk"
	}
	if c.AssetDir == "" {
		c.AssetDir = "./data/assets"
	}
	if c.MaxAssetBytes == 0 {
		c.MaxAssetBytes = 50 << 20
	}
	if c.MaxRefs == 0 {
		c.MaxRefs = 256
	}
	if c.CatalogBaseURL == "" {
		c.CatalogBaseURL = "https://wger.de/api/v2"
	}
	if c.CatalogTimeout.Duration == 0 {
		c.CatalogTimeout.Duration = 8 * time.Second
	}
	if c.ConnectivityCacheTTL.Duration == 0 {
		c.ConnectivityCacheTTL.Duration = 10 * time.Second
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MetadataTTL.Duration < 0 {
		errs = append(errs, errors.New("metadata_ttl cannot be negative"))
	}
	if c.MaxAssetBytes < 0 {
		errs = append(errs, errors.New("max_asset_bytes cannot be negative"))
	}
	if c.CatalogRequestsPerSecond < 0 {
		errs = append(errs, errors.New("catalog_requests_per_second cannot be negative"))
	}
	return errors.Join(errs...)
}
