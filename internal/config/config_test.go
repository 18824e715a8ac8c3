package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helpbundler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
bundle:
  name: handbook
source:
  content_root: ./content
`

func TestLoad_MinimalConfigGetsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	require.Equal(t, "handbook", cfg.Bundle.Name)
	require.Equal(t, "handbook", cfg.Bundle.Identifier)
	require.Equal(t, "handbook", cfg.Bundle.Title)
	require.Equal(t, "./bundle", cfg.Output.Directory)
	require.Equal(t, "hugo", cfg.Scan.Provider)
	require.Equal(t, 4, cfg.Scan.Workers)
	require.Equal(t, "default", cfg.Theme.Name)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, 500, cfg.Watch.DebounceMS)
}

func TestLoad_ExplicitIdentifierKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
bundle:
  identifier: com.example.handbook
  name: handbook
source:
  content_root: ./content
`))
	require.NoError(t, err)
	require.Equal(t, "com.example.handbook", cfg.Bundle.Identifier)
}

func TestLoad_IdentifierWithWhitespaceFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
bundle:
  identifier: "my handbook"
  name: handbook
source:
  content_root: ./content
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bundle.identifier")
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MissingBundleNameFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
source:
  content_root: ./content
`))
	require.Error(t, err)
}

func TestLoad_ContentRootAndGitURLMutuallyExclusive(t *testing.T) {
	_, err := Load(writeConfig(t, `
bundle:
  name: handbook
source:
  content_root: ./content
  git:
    url: https://forge.example.com/team/handbook.git
`))
	require.Error(t, err)
}

func TestLoad_CustomThemeRequiresStylesheet(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
theme:
  name: custom
`))
	require.Error(t, err)

	cfg, err := Load(writeConfig(t, minimalConfig+`
theme:
  name: custom
  stylesheet: ./brand.css
`))
	require.NoError(t, err)
	require.Equal(t, "./brand.css", cfg.Theme.Stylesheet)
}

func TestLoad_StylesheetRejectedForBuiltinTheme(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
theme:
  name: slate
  stylesheet: ./brand.css
`))
	require.Error(t, err)
}

func TestLoad_InvalidLogLevelFails(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
logging:
  level: verbose
`))
	require.Error(t, err)
}

func TestLoad_EnvOverridesApply(t *testing.T) {
	t.Setenv(EnvBundleID, "com.example.handbook")
	t.Setenv(EnvTheme, "paper")
	t.Setenv(EnvIncludeDrafts, "true")
	t.Setenv(EnvScanWorkers, "8")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	require.Equal(t, "com.example.handbook", cfg.Bundle.Identifier)
	require.Equal(t, "paper", cfg.Theme.Name)
	require.True(t, cfg.Scan.IncludeDrafts)
	require.Equal(t, 8, cfg.Scan.Workers)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("CONTENT_DIR", "/srv/content")
	cfg, err := Load(writeConfig(t, `
bundle:
  name: handbook
source:
  content_root: ${CONTENT_DIR}
`))
	require.NoError(t, err)
	require.Equal(t, "/srv/content", cfg.Source.ContentRoot)
}

func TestLoad_HistoryPathDefaultsWhenEnabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
history:
  enabled: true
`))
	require.NoError(t, err)
	require.Equal(t, ".helpbundler/history.db", cfg.History.Path)
}
