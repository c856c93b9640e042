package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/rules"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "STARFORGE_SEED", "STARFORGE_ENABLED_BOOKS",
		"STARFORGE_XENOS_SOURCES", "STARFORGE_SHOW_REFERENCES", "STARFORGE_SETTINGS_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load()
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.JSONFormat)
	assert.False(t, cfg.Generation.Seeded)
	assert.Equal(t, rules.DefaultSettings(), cfg.Rules())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("STARFORGE_SEED", "1234")
	t.Setenv("STARFORGE_ENABLED_BOOKS", "core, stars-of-inequity")
	t.Setenv("STARFORGE_XENOS_SOURCES", "stars-of-inequity")
	t.Setenv("STARFORGE_SHOW_REFERENCES", "false")

	cfg, err := load()
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.True(t, cfg.Logging.JSONFormat)
	assert.True(t, cfg.Generation.Seeded)
	assert.Equal(t, uint64(1234), cfg.Generation.Seed)

	settings := cfg.Rules()
	assert.True(t, settings.BookEnabled(rules.BookStarsOfInequity))
	assert.False(t, settings.BookEnabled(rules.BookKoronusBestiary))
	assert.False(t, settings.XenosSourceEnabled(rules.XenosSourceKoronusBestiary))
	assert.False(t, settings.ShowReferences)
}

func TestLoad_RejectsBadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv("STARFORGE_SEED", "-7")

	_, err := load()
	assert.ErrorContains(t, err, "STARFORGE_SEED")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown book", key: "STARFORGE_ENABLED_BOOKS", value: "core,codex-astartes", wantErr: "codex-astartes"},
		{name: "unknown source", key: "STARFORGE_XENOS_SOURCES", value: "lexicanum", wantErr: "lexicanum"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml", wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := load()
			require.NoError(t, err)
			assert.ErrorContains(t, cfg.validate(), tt.wantErr)
		})
	}
}

func TestLoad_SettingsFileOverridesEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
books:
  battlefleet-koronus: false
  into-the-storm: true
xenosSources:
  koronus-bestiary: false
showReferences: false
`), 0o600))

	t.Setenv("STARFORGE_ENABLED_BOOKS", "core,stars-of-inequity,battlefleet-koronus")
	t.Setenv("STARFORGE_SETTINGS_FILE", path)

	cfg, err := load()
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.Equal(t, []string{"core", "stars-of-inequity", "into-the-storm"}, cfg.Settings.EnabledBooks)
	assert.Equal(t, []string{"stars-of-inequity"}, cfg.Settings.XenosSources)
	assert.False(t, cfg.Settings.ShowReferences)
}

func TestLoad_SettingsFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STARFORGE_SETTINGS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := load()
	assert.ErrorContains(t, err, "failed to read settings file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("books: [unterminated"), 0o600))
	t.Setenv("STARFORGE_SETTINGS_FILE", bad)
	_, err = load()
	assert.ErrorContains(t, err, "failed to parse settings file")
}
