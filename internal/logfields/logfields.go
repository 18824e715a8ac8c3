package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySection    = "section"
	KeyProvider   = "provider"
	KeyTheme      = "theme"
	KeyDocuments  = "documents"
	KeyAssets     = "assets"
	KeyPages      = "pages"
	KeyWarnings   = "warnings"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Provider(name string) slog.Attr  { return slog.String(KeyProvider, name) }
func Theme(name string) slog.Attr     { return slog.String(KeyTheme, name) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func Assets(n int) slog.Attr          { return slog.Int(KeyAssets, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
