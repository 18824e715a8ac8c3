package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_BuiltinThemes(t *testing.T) {
	for _, name := range []string{"default", "slate", "paper"} {
		th, err := Resolve(name, "")
		require.NoError(t, err, name)
		require.Equal(t, name, th.Name())

		css, err := th.Stylesheet()
		require.NoError(t, err)
		require.Contains(t, string(css), ".sidebar")
	}
}

func TestResolve_UnknownThemeFails(t *testing.T) {
	_, err := Resolve("neon", "")
	require.Error(t, err)
}

func TestResolve_CustomRequiresStylesheetPath(t *testing.T) {
	_, err := Resolve(CustomName, "")
	require.Error(t, err)
}

func TestResolve_CustomReadsStylesheetFile(t *testing.T) {
	dir := t.TempDir()
	cssPath := filepath.Join(dir, "site.css")
	require.NoError(t, os.WriteFile(cssPath, []byte("body { color: red; }"), 0o644))

	th, err := Resolve(CustomName, cssPath)
	require.NoError(t, err)
	css, err := th.Stylesheet()
	require.NoError(t, err)
	require.Equal(t, "body { color: red; }", string(css))
}

func TestResolve_CustomMissingFileErrorsAtReadTime(t *testing.T) {
	th, err := Resolve(CustomName, "/nonexistent/site.css")
	require.NoError(t, err)
	_, err = th.Stylesheet()
	require.Error(t, err)
}

func TestRegister_DuplicateIgnored(t *testing.T) {
	before := len(Names())
	Register(&builtinTheme{name: "default", palette: "--fg: #000;"})
	require.Len(t, Names(), before)
}
