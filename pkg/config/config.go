// Package config loads application configuration from config.yaml with
// environment variable overrides. Secrets (database password, LLM API key,
// cookie secret) come exclusively from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for tripchat-engine.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// SessionSecret signs the session-ID cookie. Secret - not in YAML.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET" env-default:"dev-session-secret"`

	// SessionIdleTTLMinutes is how long an idle conversation context is
	// kept before it is discarded, independent of cookie expiry.
	SessionIdleTTLMinutes int `yaml:"session_idle_ttl_minutes" env:"SESSION_IDLE_TTL_MINUTES" env-default:"30"`

	// TripDB is the customer trip database (MySQL, read-only access).
	TripDB TripDBConfig `yaml:"trip_db"`

	// LLM configures the completion endpoints.
	LLM LLMConfig `yaml:"llm"`

	// AuditLogPath is the append-only JSONL record of every turn.
	AuditLogPath string `yaml:"audit_log_path" env:"AUDIT_LOG_PATH" env-default:"query_logs.jsonl"`
}

// TripDBConfig holds the MySQL connection settings for the trip store.
type TripDBConfig struct {
	Host     string `yaml:"host" env:"TRIPDB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"TRIPDB_PORT" env-default:"3306"`
	User     string `yaml:"user" env:"TRIPDB_USER" env-default:"plms_reader"`
	Password string `yaml:"-" env:"TRIPDB_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"TRIPDB_DATABASE" env-default:"transactionalplms"`
}

// DSN returns the go-sql-driver/mysql connection string. parseTime is
// required so datetime columns scan into time.Time for the formatter.
func (c *TripDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// LLMConfig holds the OpenAI-compatible completion endpoint settings.
// The defaults target Groq's OpenAI-compatible API, with separate models
// for SQL generation and narrative response generation.
type LLMConfig struct {
	Endpoint       string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.groq.com/openai/v1"`
	APIKey         string `yaml:"-" env:"GROQ_API_KEY"` // Secret - not in YAML
	SQLGenModel    string `yaml:"sqlgen_model" env:"LLM_SQLGEN_MODEL" env-default:"gemma2-9b-it"`
	NarrativeModel string `yaml:"narrative_model" env:"LLM_NARRATIVE_MODEL" env-default:"llama3-8b-8192"`

	// TimeoutSeconds bounds each completion and each database execution.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"LLM_TIMEOUT_SECONDS" env-default:"60"`

	// NarrativeEnabled switches the second completion that rewrites query
	// results conversationally. When off (or on any narrative failure) the
	// deterministic formatter is used.
	NarrativeEnabled bool `yaml:"narrative_enabled" env:"LLM_NARRATIVE_ENABLED" env-default:"false"`
}

// Timeout returns the per-call timeout as a duration.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionIdleTTL returns the idle session expiry as a duration.
func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleTTLMinutes) * time.Minute
}

// Load reads configuration from config.yaml with environment variable
// overrides. If the file does not exist, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	return load("config.yaml", version)
}

func load(path, version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionIdleTTLMinutes <= 0 {
		return fmt.Errorf("session_idle_ttl_minutes must be positive, got %d", c.SessionIdleTTLMinutes)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("llm timeout_seconds must be positive, got %d", c.LLM.TimeoutSeconds)
	}
	return nil
}
