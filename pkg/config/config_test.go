package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromEnvOnly(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.yaml"), "test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 30, cfg.SessionIdleTTLMinutes)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.Endpoint)
	assert.Equal(t, "gemma2-9b-it", cfg.LLM.SQLGenModel)
	assert.Equal(t, "llama3-8b-8192", cfg.LLM.NarrativeModel)
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds)
	assert.False(t, cfg.LLM.NarrativeEnabled)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
port: "9000"
session_idle_ttl_minutes: 10
trip_db:
  host: tripdb.internal
  database: plms
llm:
  sqlgen_model: custom-model
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("TRIPDB_PASSWORD", "s3cret")
	t.Setenv("PORT", "9100") // env overrides YAML

	cfg, err := load(path, "dev")
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 10, cfg.SessionIdleTTLMinutes)
	assert.Equal(t, "tripdb.internal", cfg.TripDB.Host)
	assert.Equal(t, "custom-model", cfg.LLM.SQLGenModel)
	assert.Equal(t, "s3cret", cfg.TripDB.Password)
}

func TestTripDBDSN(t *testing.T) {
	db := TripDBConfig{
		Host:     "db.internal",
		Port:     3306,
		User:     "plms_reader",
		Password: "pw",
		Database: "transactionalplms",
	}
	assert.Equal(t,
		"plms_reader:pw@tcp(db.internal:3306)/transactionalplms?parseTime=true",
		db.DSN())
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session_idle_ttl_minutes: 0\n"), 0o600))

	_, err := load(path, "dev")
	assert.Error(t, err)
}
