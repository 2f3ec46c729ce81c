package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gingerrexayers/fdf-go/internal/fdf/types"
	"github.com/gingerrexayers/fdf-go/internal/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfigSearch keeps LoadSettings from finding a real user config.
func isolateConfigSearch(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("fdf", pflag.ContinueOnError)
	flags.BoolP("symlinks", "s", false, "")
	flags.IntP("max-depth", "d", types.UnlimitedDepth, "")
	flags.StringP("algorithm", "a", DefaultHashAlgorithm, "")
	flags.StringSliceP("exclude", "e", nil, "")
	flags.IntP("workers", "w", 1, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadSettings_Defaults(t *testing.T) {
	isolateConfigSearch(t)

	settings, err := LoadSettings("", nil)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultOptions().MaxDepth, settings.Options.MaxDepth)
	assert.Equal(t, "sha1", settings.Options.Algorithm)
	assert.False(t, settings.Options.IncludeSymlinks)
	assert.Equal(t, 1, settings.Options.Workers)
	assert.Equal(t, 32*1024, settings.Options.BufferSize)
	assert.Empty(t, settings.Options.Exclude)
	assert.Equal(t, logger.LevelInfo, settings.Log.Level)
	assert.Equal(t, logger.FormatText, settings.Log.Format)
	assert.Empty(t, settings.Log.File.Path)
}

func TestLoadSettings_ConfigFile(t *testing.T) {
	isolateConfigSearch(t)
	path := writeConfig(t, `
symlinks: true
max_depth: 3
algorithm: SHA256
exclude:
  - "*.log"
  - build/
groups: true
log:
  level: debug
  format: json
  file: /tmp/fdf-test.log
`)

	settings, err := LoadSettings(path, nil)
	require.NoError(t, err)

	assert.True(t, settings.Options.IncludeSymlinks)
	assert.Equal(t, 3, settings.Options.MaxDepth)
	assert.Equal(t, "sha256", settings.Options.Algorithm)
	assert.Equal(t, []string{"*.log", "build/"}, settings.Options.Exclude)
	assert.True(t, settings.Options.Groups)
	assert.Equal(t, logger.LevelDebug, settings.Log.Level)
	assert.Equal(t, logger.FormatJSON, settings.Log.Format)
	assert.Equal(t, "/tmp/fdf-test.log", settings.Log.File.Path)
	assert.Equal(t, 10, settings.Log.File.MaxSizeMB)
}

func TestLoadSettings_Precedence(t *testing.T) {
	isolateConfigSearch(t)
	path := writeConfig(t, "max_depth: 3\nalgorithm: sha256\nworkers: 2\n")
	t.Setenv("FDF_ALGORITHM", "sha512")
	t.Setenv("FDF_WORKERS", "6")

	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{"--workers", "4"}))

	settings, err := LoadSettings(path, flags)
	require.NoError(t, err)

	// Unset flag: the config file value stands.
	assert.Equal(t, 3, settings.Options.MaxDepth)
	// Environment beats the config file.
	assert.Equal(t, "sha512", settings.Options.Algorithm)
	// A flag that was set beats everything.
	assert.Equal(t, 4, settings.Options.Workers)
}

func TestLoadSettings_WorkersZeroMeansAllCPUs(t *testing.T) {
	isolateConfigSearch(t)
	path := writeConfig(t, "workers: 0\n")

	settings, err := LoadSettings(path, nil)
	require.NoError(t, err)
	assert.Positive(t, settings.Options.Workers)
}

func TestLoadSettings_Invalid(t *testing.T) {
	isolateConfigSearch(t)

	testCases := []struct {
		name    string
		content string
	}{
		{"unknown algorithm", "algorithm: md4\n"},
		{"negative depth", "max_depth: -2\n"},
		{"negative workers", "workers: -1\n"},
		{"zero buffer", "buffer_size: 0\n"},
		{"malformed yaml", "max_depth: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSettings(writeConfig(t, tc.content), nil)
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	isolateConfigSearch(t)
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}
