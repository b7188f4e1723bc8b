package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mokka-studios/datatable/pkg/types"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	data, err := os.ReadFile(filepath.Join(dir, FileBase))
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, yaml.Unmarshal(data, &onDisk))
	assert.Equal(t, Defaults(), onDisk)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\ndata_dir: /srv/data\npage_size: 30\nlocale: de\nlog_format: json\nseed_demo_data: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileBase), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their defaults")
	assert.False(t, cfg.SeedDemoData)

	assert.Equal(t, types.Config{Backend: "sqlite", DataDir: "/srv/data"}, cfg.Storage())
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATATABLE_PAGE_SIZE", "50")
	t.Setenv("DATATABLE_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"page size", "page_size: 15\n", "pagesize"},
		{"backend", "backend: postgres\n", "backend"},
		{"log format", "log_format: xml\n", "logformat"},
		{"locale", "locale: not-a-locale!\n", "locale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileBase), []byte(tt.content), 0o644))
			_, err := Load(dir)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestWriteDefaultKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileBase)
	require.NoError(t, os.WriteFile(path, []byte("page_size: 20\n"), 0o644))
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "page_size: 20\n", string(data))
}
