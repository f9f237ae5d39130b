package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AWS       AWSConfig       `yaml:"aws"`
	JWT       JWTConfig       `yaml:"jwt"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int           `yaml:"port"`
	Host           string        `yaml:"host"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// StorageConfig selects the store implementation
type StorageConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig holds the optional profile cache configuration.
// An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// AWSConfig holds the S3 configuration used for account exports.
// An empty S3Bucket disables exports.
type AWSConfig struct {
	Region    string        `yaml:"region"`
	S3Bucket  string        `yaml:"s3_bucket"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Endpoint  string        `yaml:"endpoint"`
	URLExpiry time.Duration `yaml:"url_expiry"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// DiscoveryConfig holds candidate selection settings
type DiscoveryConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when a field is not set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			RequestTimeout: 10 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Storage:   StorageConfig{Driver: DriverPostgres},
		Database:  DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "disable"},
		Redis:     RedisConfig{TTL: 5 * time.Minute},
		AWS:       AWSConfig{Region: "us-east-1", URLExpiry: 15 * time.Minute},
		JWT:       JWTConfig{TTL: 30 * 24 * time.Hour},
		Discovery: DiscoveryConfig{PoolSize: 50},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file, then applies environment overrides.
// A missing file is not an error when path is empty.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString("HEARTMATCH_HOST", &c.Server.Host)
	setString("HEARTMATCH_STORAGE_DRIVER", &c.Storage.Driver)
	setString("DATABASE_URL", &c.Database.URL)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("JWT_SECRET", &c.JWT.Secret)
	setString("AWS_REGION", &c.AWS.Region)
	setString("HEARTMATCH_S3_BUCKET", &c.AWS.S3Bucket)
	setString("HEARTMATCH_S3_ENDPOINT", &c.AWS.Endpoint)
	setString("HEARTMATCH_LOG_LEVEL", &c.Log.Level)
	setString("HEARTMATCH_LOG_FORMAT", &c.Log.Format)

	if v, ok := os.LookupEnv("HEARTMATCH_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HEARTMATCH_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	switch c.Storage.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Discovery.PoolSize <= 0 {
		return fmt.Errorf("discovery.pool_size must be positive")
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
