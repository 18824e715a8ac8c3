// Package bundle writes a composed page set to disk as a self-contained
// documentation bundle: HTML pages, the theme stylesheet, the flattened asset
// store, and a manifest describing the build.
//
// Output is staged in a sibling directory and promoted atomically, so a
// failed build never leaves a half-written bundle behind.
package bundle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/helpbundler/internal/compose"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/relpath"
)

// ManifestName is the bundle manifest file written at the bundle root.
const ManifestName = "bundle.json"

// Writer stages and promotes one bundle output directory.
type Writer struct {
	outputDir string
	stageDir  string

	pages  int
	assets int
}

// NewWriter creates a Writer targeting outputDir. Begin must be called before
// any write.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Begin creates the staging directory next to the final output location.
func (w *Writer) Begin() error {
	stage := w.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to clear stale staging directory").
			WithContext("path", stage).Build()
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to create staging directory").
			WithContext("path", stage).Build()
	}
	w.stageDir = stage
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", w.outputDir))
	return nil
}

// WritePage writes one composed page under its relative output path, creating
// intermediate directories as needed.
func (w *Writer) WritePage(page compose.Page) error {
	if err := w.writeFile(page.OutputRelativePath, []byte(page.HTML)); err != nil {
		return err
	}
	w.pages++
	return nil
}

// WriteStylesheet writes the theme stylesheet at the bundle root.
func (w *Writer) WriteStylesheet(css []byte) error {
	return w.writeFile(compose.StylesheetName, css)
}

// CopyAssets copies every entry of an already-flattened asset manifest
// (flat file name to source path) into the assets directory. Name collisions
// were resolved when the manifest was computed.
func (w *Writer) CopyAssets(manifest map[string]string) error {
	if len(manifest) == 0 {
		return nil
	}

	dir := filepath.Join(w.stageDir, relpath.AssetDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to create assets directory").
			WithContext("path", dir).Build()
	}
	for flatName, source := range manifest {
		if err := copyFile(source, filepath.Join(dir, flatName)); err != nil {
			return errors.WrapError(err, errors.CategoryBundle, "failed to copy asset").
				WithContext("source", source).WithContext("file", flatName).Build()
		}
		w.assets++
	}
	return nil
}

// WriteManifest records the build manifest at the bundle root.
func (w *Writer) WriteManifest(m *Manifest) error {
	m.Pages = w.pages
	m.Assets = w.assets
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return w.writeFile(ManifestName, data)
}

// Promote atomically replaces the output directory with the staged bundle.
// Any existing output is moved aside first and removed after the rename.
func (w *Writer) Promote() error {
	if w.stageDir == "" {
		return errors.NewError(errors.CategoryBundle, "no staging directory initialized").Build()
	}
	if _, err := os.Stat(w.stageDir); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "staging directory missing at promote").
			WithContext("path", w.stageDir).Build()
	}

	prev := w.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	if _, err := os.Stat(w.outputDir); err == nil {
		if err := os.Rename(w.outputDir, prev); err != nil {
			return errors.WrapError(err, errors.CategoryBundle, "failed to back up existing output").
				WithContext("path", w.outputDir).Build()
		}
	}
	if err := os.Rename(w.stageDir, w.outputDir); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to promote staging directory").
			WithContext("path", w.stageDir).Build()
	}
	w.stageDir = ""
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	slog.Info("Promoted bundle output",
		logfields.Path(w.outputDir), logfields.Pages(w.pages), logfields.Assets(w.assets))
	return nil
}

// Abort removes the staging directory after a failed build.
func (w *Writer) Abort() {
	if w.stageDir == "" {
		return
	}
	dir := w.stageDir
	w.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", slog.String("staging", dir), logfields.Error(err))
	}
}

func (w *Writer) writeFile(relativePath string, data []byte) error {
	if w.stageDir == "" {
		return errors.NewError(errors.CategoryBundle, "write before staging initialized").
			WithContext("file", relativePath).Build()
	}
	target := filepath.Join(w.stageDir, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to create output directory").
			WithContext("path", filepath.Dir(target)).Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "failed to write output file").
			WithContext("file", relativePath).Build()
	}
	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
