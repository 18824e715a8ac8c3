// Package assets discovers non-document files (images, stylesheets, scripts)
// across the content root and an optional separate assets root, and merges
// them into one flat-by-file-name manifest.
package assets

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
)

// contentExtension marks files that are pages, not assets.
const contentExtension = ".md"

// Scan walks contentRoot and then assetsRoot (optional, may be empty) and
// merges their non-document files into one asset set. The content root is
// scanned first; a matching relative path from the assets root overrides it.
func Scan(contentRoot, assetsRoot string) (*docmodel.AssetSet, error) {
	set := docmodel.NewAssetSet()

	if err := scanRoot(contentRoot, set); err != nil {
		return nil, err
	}
	if assetsRoot != "" {
		if err := scanRoot(assetsRoot, set); err != nil {
			return nil, err
		}
	}

	slog.Debug("Asset scan complete", logfields.Assets(set.Len()))
	return set, nil
}

func scanRoot(root string, set *docmodel.AssetSet) error {
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
		if entry.IsDir() || strings.HasSuffix(name, contentExtension) {
			return nil
		}

		rel, err := filepath.Rel(root, pathname)
		if err != nil {
			return err
		}
		ref, err := docmodel.NewAssetReference(filepath.ToSlash(rel), pathname)
		if err != nil {
			slog.Warn("Skipping asset with invalid path", logfields.Path(pathname), logfields.Error(err))
			return nil
		}
		if set.Put(ref) {
			slog.Debug("Asset overridden by later scan root", logfields.Path(ref.RelativePath))
		}
		return nil
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "asset root walk failed").
			WithContext("root", root).Build()
	}
	return nil
}
