package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookstack-labs/lookfmt/internal/cli/config"
	"github.com/lookstack-labs/lookfmt/pkg/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lookfmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg, err := config.LoadConfig(writeConfig(t, ""), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.IndentWidth)
	assert.True(t, cfg.UseSpaces)
	assert.False(t, cfg.GroupFieldsByType)
	assert.False(t, cfg.SortFields)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_FromFile(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	path := writeConfig(t, `
indent_width: 4
group_fields_by_type: true
sort_fields: true
sql_properties:
  - sql_custom
lint:
  disabled:
    - F1
  severity:
    E1: error
`)
	cfg, err := config.LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.IndentWidth)
	assert.True(t, cfg.GroupFieldsByType)
	assert.True(t, cfg.SortFields)
	assert.Equal(t, []string{"sql_custom"}, cfg.SQLProperties)
	assert.Equal(t, filepath.Dir(path), cfg.ProjectRoot)
	assert.Equal(t, path, config.GetConfigFileUsed())

	opts := cfg.FormatOptions()
	assert.Equal(t, 4, opts.IndentWidth)
	assert.True(t, opts.GroupFieldsByType)
	assert.Equal(t, []string{"sql_custom"}, opts.SQLProperties)

	rc := cfg.LintRuleConfig()
	assert.False(t, rc.IsEnabled("F1"))
	assert.True(t, rc.IsEnabled("K1"))
	assert.Equal(t, lint.SeverityError, rc.GetSeverity("E1", lint.SeverityWarning))
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Setenv("LOOKFMT_INDENT_WIDTH", "8")

	cfg, err := config.LoadConfig(writeConfig(t, "indent_width: 4\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.IndentWidth)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Setenv("LOOKFMT_INDENT_WIDTH", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent-width", 2, "")
	flags.Bool("tabs", false, "")
	flags.Bool("group", false, "")
	flags.Bool("sort", false, "")
	require.NoError(t, flags.Parse([]string{"--indent-width=3", "--tabs", "--group"}))

	cfg, err := config.LoadConfig(writeConfig(t, "indent_width: 4\n"), flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.IndentWidth)
	assert.False(t, cfg.UseSpaces, "--tabs should flip use_spaces off")
	assert.True(t, cfg.GroupFieldsByType)
	assert.False(t, cfg.SortFields, "unset flags keep lower-precedence values")
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent-width", 2, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.LoadConfig(writeConfig(t, "indent_width: 6\n"), flags)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.IndentWidth)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lookfmt.yaml"), []byte("indent_width: 4\n"), 0o600))
	nested := filepath.Join(root, "views", "core")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.IndentWidth)
}

func TestLintRuleConfig_Nil(t *testing.T) {
	cfg := &config.Config{}
	rc := cfg.LintRuleConfig()
	assert.True(t, rc.IsEnabled("K1"))
}
