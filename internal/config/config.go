package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the talentbridge API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Search    SearchConfig    `yaml:"search"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Driver             string `yaml:"driver"` // pgx, postgres (default: pgx)
	DSN                string `yaml:"dsn"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	ReadinessTimeout   int    `yaml:"readiness_timeout_sec"`
	Migrate            bool   `yaml:"migrate"`
}

// RedisConfig holds the popular searches store. Empty addrs disables it.
type RedisConfig struct {
	Addrs             []string `yaml:"addrs"`
	Password          string   `yaml:"password"`
	KeyPrefix         string   `yaml:"key_prefix"`
	PopularMaxEntries int      `yaml:"popular_max_entries"`
}

// StorageConfig holds S3-compatible object storage settings. Empty bucket disables it.
type StorageConfig struct {
	Endpoint         string            `yaml:"endpoint"`
	Region           string            `yaml:"region"`
	Bucket           string            `yaml:"bucket"`
	AccessKey        string            `yaml:"access_key"`
	SecretKey        string            `yaml:"secret_key"`
	UsePathStyle     bool              `yaml:"use_path_style"`
	PresignTTLSec    int               `yaml:"presign_ttl_sec"`
	CertificateLogos map[string]string `yaml:"certificate_logos"` // logo name -> object key
}

// AuthConfig holds session verification settings.
type AuthConfig struct {
	OIDC      OIDCConfig `yaml:"oidc"`
	APITokens []APIToken `yaml:"api_tokens"`
}

// OIDCConfig holds the identity provider. Empty issuer_url disables ID token verification.
type OIDCConfig struct {
	IssuerURL string `yaml:"issuer_url"`
	ClientID  string `yaml:"client_id"`
	RoleClaim string `yaml:"role_claim"`
}

// APIToken is a static machine credential.
type APIToken struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
	Role  string `yaml:"role"`
}

// SearchConfig holds global search behavior.
type SearchConfig struct {
	FailurePolicy string `yaml:"failure_policy"` // all_or_nothing, partial
	Ranking       string `yaml:"ranking"`        // priority, lexical, embedding
	StrictFilters bool   `yaml:"strict_filters"`
}

// WeightsConfig holds engagement weights.
type WeightsConfig struct {
	Views  int `yaml:"views"`
	Likes  int `yaml:"likes"`
	Shares int `yaml:"shares"`
}

// RankingConfig holds startup recommendation and trending settings.
type RankingConfig struct {
	Weights            WeightsConfig `yaml:"weights"`
	CategoryBoost      float64       `yaml:"category_boost"`
	TrendingWindowDays int           `yaml:"trending_window_days"`
}

// EmbeddingConfig holds the OpenAI-compatible provider used by the embedding scorer.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	// MaxBatchSize caps texts per provider request.
	MaxBatchSize int `yaml:"max_batch_size"`
	// CacheTTLSec caches embeddings in redis when > 0 and redis is configured.
	CacheTTLSec int `yaml:"cache_ttl_sec"`
}

// TracingConfig holds the OTLP exporter.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML with ${VAR} expansion, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "pgx"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "talentbridge:"
	}
	if c.Redis.PopularMaxEntries <= 0 {
		c.Redis.PopularMaxEntries = 1000
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.Storage.PresignTTLSec <= 0 {
		c.Storage.PresignTTLSec = 900
	}
	if c.Auth.OIDC.RoleClaim == "" {
		c.Auth.OIDC.RoleClaim = "role"
	}
	if c.Search.FailurePolicy == "" {
		c.Search.FailurePolicy = "all_or_nothing"
	}
	if c.Search.Ranking == "" {
		c.Search.Ranking = "priority"
	}
	if c.Ranking.Weights == (WeightsConfig{}) {
		c.Ranking.Weights = WeightsConfig{Views: 1, Likes: 3, Shares: 5}
	}
	if c.Ranking.CategoryBoost <= 0 {
		c.Ranking.CategoryBoost = 10
	}
	if c.Ranking.TrendingWindowDays <= 0 {
		c.Ranking.TrendingWindowDays = 30
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.MaxBatchSize <= 0 {
		c.Embedding.MaxBatchSize = 256
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "talentbridge"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("database.driver must be \"pgx\" or \"postgres\", got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	switch c.Search.FailurePolicy {
	case "all_or_nothing", "partial":
	default:
		return fmt.Errorf(
			"search.failure_policy must be \"all_or_nothing\" or \"partial\", got %q", c.Search.FailurePolicy,
		)
	}
	switch c.Search.Ranking {
	case "priority", "lexical":
	case "embedding":
		if c.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required when search.ranking is \"embedding\"")
		}
	default:
		return fmt.Errorf("search.ranking must be \"priority\", \"lexical\" or \"embedding\", got %q", c.Search.Ranking)
	}
	if c.Embedding.CacheTTLSec < 0 {
		return fmt.Errorf("embedding.cache_ttl_sec must not be negative, got %d", c.Embedding.CacheTTLSec)
	}
	w := c.Ranking.Weights
	if w.Views < 0 || w.Likes < 0 || w.Shares < 0 {
		return fmt.Errorf("ranking.weights must not be negative")
	}
	for i, t := range c.Auth.APITokens {
		if t.Token == "" {
			return fmt.Errorf("auth.api_tokens[%d].token is required", i)
		}
		if t.Role == "" {
			return fmt.Errorf("auth.api_tokens[%d].role is required", i)
		}
	}
	if c.Auth.OIDC.IssuerURL != "" && c.Auth.OIDC.ClientID == "" {
		return fmt.Errorf("auth.oidc.client_id is required when issuer_url is set")
	}
	if len(c.Storage.CertificateLogos) > 0 && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when certificate_logos are configured")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
