package sched

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsWhenPathEmpty(t *testing.T) {
	cfg := Load("")
	assert.Equal(t, int64(1), cfg.Quanta)
	assert.Equal(t, 1, cfg.CPUCount)
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadClampsNonpositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "quanta: -5\ncpu_count: 0\ntick_ms: -1\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Load(path)
	assert.Equal(t, int64(1), cfg.Quanta)
	assert.Equal(t, 1, cfg.CPUCount)
	assert.Equal(t, 5, cfg.TickMS)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "quanta: 50\ncpu_count: 4\nlog_level: debug\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Load(path)
	assert.Equal(t, int64(50), cfg.Quanta)
	assert.Equal(t, 4, cfg.CPUCount)
	assert.Equal(t, "debug", cfg.LogLevel)
}
