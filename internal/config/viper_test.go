package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "finaudit.db", cfg.Database.Path)
	assert.Equal(t, 20, cfg.Import.PreviewLines)
	assert.Equal(t, "suspicious_words.yaml", cfg.Words.File)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("FINAUDIT_LOG_LEVEL", "debug")
	t.Setenv("FINAUDIT_DATABASE_PATH", "/tmp/other.db")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("FINAUDIT_LOG_LEVEL", "chatty")
	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Database.Path = "audit.db"
	cfg.Import.PreviewLines = 20
	assert.NoError(t, validateConfig(&cfg))

	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(&cfg))
	cfg.Log.Format = "json"

	cfg.Database.Path = ""
	assert.Error(t, validateConfig(&cfg))
	cfg.Database.Path = "audit.db"

	cfg.Import.PreviewLines = -1
	assert.Error(t, validateConfig(&cfg))
}
