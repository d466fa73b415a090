package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend      BackendConfig `yaml:"backend"`
	StateFile    string        `yaml:"state_file"`
	RedisURL     string        `yaml:"redis_url"`
	DatabaseURL  string        `yaml:"database_url"`
	AuditLogFile string        `yaml:"audit_log_file"`
	LogFile      string        `yaml:"log_file"`
}

type BackendConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// Duration lets YAML carry values like "15s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load builds the configuration from defaults, then the optional YAML
// file at path (ignored when path is empty and the default file does
// not exist), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		Backend: BackendConfig{
			URL:     "http://localhost:3000",
			Timeout: Duration(15 * time.Second),
		},
		StateFile:    "./data/session.json",
		AuditLogFile: "./data/audit.log",
		LogFile:      "./data/admin-console.log",
	}

	explicit := path != ""
	if path == "" {
		path = "./admin-console.yaml"
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Default config file is optional.
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Backend.URL = getEnv("BACKEND_URL", cfg.Backend.URL)
	if sec := getEnvInt("BACKEND_TIMEOUT_SEC", 0); sec > 0 {
		cfg.Backend.Timeout = Duration(time.Duration(sec) * time.Second)
	}
	cfg.StateFile = getEnv("SESSION_STATE_FILE", cfg.StateFile)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.AuditLogFile = getEnv("AUDIT_LOG_FILE", cfg.AuditLogFile)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	if cfg.Backend.URL == "" {
		return Config{}, fmt.Errorf("backend url must not be empty")
	}
	if cfg.Backend.Timeout <= 0 {
		return Config{}, fmt.Errorf("backend timeout must be > 0")
	}
	if cfg.StateFile == "" && cfg.RedisURL == "" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("a session store (state file, redis, or database) must be configured")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
