package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultDevAnalysisURL  = "http://localhost:3000/api"
	defaultProdAnalysisURL = "https://careercraft-be-x410.onrender.com/api"
)

// Store drivers.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	Env      string         `mapstructure:"env"`
	API      APIConfig      `mapstructure:"api"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalysisConfig points at the remote analysis service.
type AnalysisConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// JobLimit is sent as the limit of job recommendation requests.
	JobLimit int `mapstructure:"job_limit"`
}

// StoreConfig selects the preference backend.
type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	MaxValueBytes int    `mapstructure:"max_value_bytes"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Prefix string `mapstructure:"prefix"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
// Export storage is disabled while Endpoint is empty.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// Enabled reports whether export blobs should go to object storage.
func (m MinIOConfig) Enabled() bool {
	return strings.TrimSpace(m.Endpoint) != ""
}

// UploadConfig controls resume file checks.
type UploadConfig struct {
	ClamdAddr string `mapstructure:"clamd_addr"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.API.AllowedOrigins = splitList(v.GetString("api.allowed_origins"))
	if strings.TrimSpace(cfg.Analysis.BaseURL) == "" {
		cfg.Analysis.BaseURL = defaultAnalysisURL(cfg.Env)
	}
	cfg.Analysis.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Analysis.BaseURL), "/")
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaultAnalysisURL(env string) string {
	if strings.EqualFold(env, EnvProduction) {
		return defaultProdAnalysisURL
	}
	return defaultDevAnalysisURL
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.allowed_origins", "")
	v.SetDefault("analysis.base_url", "")
	v.SetDefault("analysis.timeout", 60*time.Second)
	v.SetDefault("analysis.job_limit", 10)
	v.SetDefault("store.driver", StoreRedis)
	v.SetDefault("store.max_value_bytes", 5*1024*1024)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "careercraft")
	v.SetDefault("database.user", "careercraft")
	v.SetDefault("database.password", "careercraft")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.prefix", "careercraft")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "careercraft-exports")
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("upload.clamd_addr", "")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"env":                      "APP_ENV",
		"api.port":                 "API_PORT",
		"api.allowed_origins":      "ALLOWED_ORIGINS",
		"analysis.base_url":        "ANALYSIS_API_URL",
		"analysis.timeout":         "ANALYSIS_API_TIMEOUT",
		"analysis.job_limit":       "ANALYSIS_JOB_LIMIT",
		"store.driver":             "STORE_DRIVER",
		"store.max_value_bytes":    "STORE_MAX_VALUE_BYTES",
		"database.host":            "DATABASE_HOST",
		"database.port":            "DATABASE_PORT",
		"database.name":            "POSTGRES_DB",
		"database.user":            "POSTGRES_USER",
		"database.password":        "POSTGRES_PASSWORD",
		"database.sslmode":         "DATABASE_SSLMODE",
		"redis.host":               "REDIS_HOST",
		"redis.port":               "REDIS_PORT",
		"redis.prefix":             "REDIS_PREFIX",
		"minio.endpoint":           "MINIO_ENDPOINT",
		"minio.public_endpoint":    "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":      "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":  "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":            "MINIO_USE_SSL",
		"minio.bucket":             "MINIO_BUCKET",
		"minio.region":             "MINIO_REGION",
		"minio.bucket_lookup":      "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket": "MINIO_AUTO_CREATE_BUCKET",
		"upload.clamd_addr":        "CLAMD_ADDR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	switch strings.ToLower(cfg.Env) {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown app env %q", cfg.Env)
	}
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Analysis.BaseURL == "" {
		return errors.New("analysis api url is required")
	}
	if cfg.Analysis.Timeout <= 0 {
		return errors.New("analysis api timeout must be positive")
	}
	if cfg.Analysis.JobLimit <= 0 {
		return errors.New("analysis job limit must be positive")
	}
	if cfg.Store.MaxValueBytes <= 0 {
		return errors.New("store max value bytes must be positive")
	}

	switch cfg.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if cfg.Redis.Host == "" {
			return errors.New("redis host is required")
		}
		if cfg.Redis.Port <= 0 {
			return errors.New("redis port must be positive")
		}
	case StorePostgres:
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.MinIO.Enabled() {
		if cfg.MinIO.AccessKeyID == "" {
			return errors.New("minio access key id is required")
		}
		if cfg.MinIO.SecretAccessKey == "" {
			return errors.New("minio secret access key is required")
		}
		if cfg.MinIO.Bucket == "" {
			return errors.New("minio bucket is required")
		}
	}
	return nil
}

func validateDatabase(db DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database host is required")
	}
	if db.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if db.Name == "" {
		return errors.New("database name is required")
	}
	if db.User == "" {
		return errors.New("database user is required")
	}
	if db.Password == "" {
		return errors.New("database password is required")
	}
	if db.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	return nil
}
