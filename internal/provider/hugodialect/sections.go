package hugodialect

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/frontmatter"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
)

// ScanDirectoryMetadata finds every reserved section index file below root and
// parses its front matter only; the body is discarded. The result maps
// directory relative paths (root = "") to their metadata.
func (p *Provider) ScanDirectoryMetadata(root string) (map[string]docmodel.DirectoryMetadata, error) {
	out := map[string]docmodel.DirectoryMetadata{}

	err := filepath.WalkDir(root, func(pathname string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") && pathname != root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || name != SectionIndexFile {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(pathname))
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(rel)
		if dir == "." {
			dir = ""
		}

		raw, err := os.ReadFile(pathname)
		if err != nil {
			slog.Warn("Skipping unreadable section metadata", logfields.Path(pathname), logfields.Error(err))
			return nil
		}
		extracted, err := frontmatter.Extract(raw)
		if err != nil {
			slog.Warn("Skipping malformed section metadata", logfields.Path(pathname), logfields.Error(err))
			return nil
		}

		out[dir] = docmodel.DirectoryMetadata{
			Title:       extracted.Metadata.Title,
			Description: extracted.Metadata.Description,
			Weight:      extracted.Metadata.Weight,
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "section metadata walk failed").
			WithContext("root", root).Build()
	}
	return out, nil
}
