package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1.2, cfg.Transport.BufferFactor)
	assert.Equal(t, 15, cfg.Transport.FixedBufferMin)
	assert.Equal(t, 8, cfg.Transport.SwitchCostMin["walk>metro"])
	assert.Equal(t, 6*time.Hour, cfg.Cache.SelectionTTLWithMonth)
	assert.Equal(t, 24*time.Hour, cfg.Cache.PoolTTLSignature)
	assert.Equal(t, 256, cfg.Trace.StoreCap)
	assert.NotEmpty(t, cfg.Countries)
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itinera.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/test.db
transport:
  buffer_factor: 1.5
trace:
  store_cap: 32
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 1.5, cfg.Transport.BufferFactor)
	assert.Equal(t, 32, cfg.Trace.StoreCap)
	// Untouched sections keep their defaults.
	assert.Equal(t, 15, cfg.Transport.FixedBufferMin)
}

func TestLoadAppliesEnvOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itinera.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/file.db\n"), 0o644))

	t.Setenv("ITINERA_DB", "/tmp/env.db")
	t.Setenv("ITINERA_BUFFER_FACTOR", "2.0")
	t.Setenv("ITINERA_TRACE_CAP", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, 2.0, cfg.Transport.BufferFactor)
	assert.Equal(t, 8, cfg.Trace.StoreCap)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ITINERA_BUFFER_FACTOR", "wide")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITINERA_BUFFER_FACTOR")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/itinera.yaml")
	require.Error(t, err)
}
