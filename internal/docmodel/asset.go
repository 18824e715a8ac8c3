package docmodel

import (
	"path"
	"strings"
)

// AssetType classifies a non-document file purely by its extension.
type AssetType string

const (
	AssetImage      AssetType = "image"
	AssetStylesheet AssetType = "stylesheet"
	AssetScript     AssetType = "script"
	AssetOther      AssetType = "other"
)

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".ico": {}, ".bmp": {},
}

// AssetTypeForPath derives the asset type from a file extension.
func AssetTypeForPath(p string) AssetType {
	ext := strings.ToLower(path.Ext(p))
	switch {
	case ext == ".css":
		return AssetStylesheet
	case ext == ".js" || ext == ".mjs":
		return AssetScript
	default:
		if _, ok := imageExtensions[ext]; ok {
			return AssetImage
		}
		return AssetOther
	}
}

// AssetReference points at a non-document file discovered in one of the scan
// roots.
type AssetReference struct {
	RelativePath string // relative to its own scan root
	SourcePath   string // absolute path on disk, for the flat-copy manifest
	Type         AssetType
}

// NewAssetReference builds an AssetReference with a normalized relative path
// and a derived type.
func NewAssetReference(relativePath, sourcePath string) (AssetReference, error) {
	normalized, err := NormalizeRelativePath(relativePath)
	if err != nil {
		return AssetReference{}, err
	}
	return AssetReference{
		RelativePath: normalized,
		SourcePath:   sourcePath,
		Type:         AssetTypeForPath(normalized),
	}, nil
}

// FlatName returns the bare file name used in the flat assets directory.
func (a AssetReference) FlatName() string {
	return path.Base(a.RelativePath)
}
