package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Git      GitConfig      `yaml:"git"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Seed     SeedConfig     `yaml:"seed"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
}

type GitConfig struct {
	BaseURL       string        `yaml:"base_url"`
	WorkspaceRoot string        `yaml:"workspace_root"`
	CloneTimeout  time.Duration `yaml:"clone_timeout"`
}

// AuthConfig holds the key expected in the Authorization header of delete
// requests.
type AuthConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// SeedConfig names a repository ingested at startup when the catalog is
// empty. An empty Repository disables seeding.
type SeedConfig struct {
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			User:     "postgres",
			Password: "password",
			Name:     "indexer",
			Port:     "5432",
			SSLMode:  "disable",
		},
		Git: GitConfig{
			BaseURL:       "https://github.com",
			WorkspaceRoot: filepath.Join(os.TempDir(), "git-service"),
			CloneTimeout:  10 * time.Minute,
		},
		Log:     LogConfig{Level: "info"},
		Seed:    SeedConfig{Branch: "main"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load returns the defaults, overlaid with the YAML file at path (if path is
// not empty) and then with environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Git.BaseURL = getEnv("GIT_BASE_URL", c.Git.BaseURL)
	c.Git.WorkspaceRoot = getEnv("GIT_WORKSPACE_ROOT", c.Git.WorkspaceRoot)
	c.Auth.SecretKey = getEnv("SECRET_KEY", c.Auth.SecretKey)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Seed.Repository = getEnv("SEED_REPOSITORY", c.Seed.Repository)
	c.Seed.Branch = getEnv("SEED_BRANCH", c.Seed.Branch)

	if v, ok := os.LookupEnv("SERVER_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if v, ok := os.LookupEnv("GIT_CLONE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GIT_CLONE_TIMEOUT %q: %w", v, err)
		}
		c.Git.CloneTimeout = d
	}

	for key, dst := range map[string]*bool{
		"LOG_PRETTY":      &c.Log.Pretty,
		"METRICS_ENABLED": &c.Metrics.Enabled,
	} {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = b
		}
	}

	return nil
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Git.CloneTimeout <= 0 {
		return fmt.Errorf("clone timeout must be positive, got %s", c.Git.CloneTimeout)
	}
	if c.Git.WorkspaceRoot == "" {
		return fmt.Errorf("workspace root is required")
	}
	return nil
}

// DSN is the PostgreSQL connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper function to fetch environment variables with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
