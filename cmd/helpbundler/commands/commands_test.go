package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/helpbundler/internal/config"
)

func TestInitCmd_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpbundler.yaml")
	cmd := &InitCmd{}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: path}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-docs", cfg.Bundle.Name)
	require.Equal(t, "./content", cfg.Source.ContentRoot)
}

func TestInitCmd_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpbundler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bundle:\n  name: keep\n"), 0o644))

	cmd := &InitCmd{}
	require.Error(t, cmd.Run(&Global{}, &CLI{Config: path}))

	cmd.Force = true
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: path}))
}

func TestBuildCmd_OverridesApply(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Directory = "./bundle"
	cfg.Theme.Name = "default"

	cmd := &BuildCmd{Output: "/tmp/out", Theme: "slate", IncludeDrafts: true}
	cmd.applyOverrides(cfg)

	require.Equal(t, "/tmp/out", cfg.Output.Directory)
	require.Equal(t, "slate", cfg.Theme.Name)
	require.True(t, cfg.Scan.IncludeDrafts)
}

func TestBuildCmd_EndToEnd(t *testing.T) {
	content := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(content, "intro.md"),
		[]byte("---\ntitle: Intro\n---\n# Intro\n"), 0o644))

	configPath := filepath.Join(t.TempDir(), "helpbundler.yaml")
	out := filepath.Join(t.TempDir(), "bundle")
	require.NoError(t, os.WriteFile(configPath, []byte(`
bundle:
  name: handbook
source:
  content_root: `+content+`
output:
  directory: `+out+`
`), 0o644))

	cmd := &BuildCmd{}
	require.NoError(t, cmd.Run(&Global{}, &CLI{Config: configPath}))

	_, err := os.Stat(filepath.Join(out, "intro.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "bundle.json"))
	require.NoError(t, err)
}
