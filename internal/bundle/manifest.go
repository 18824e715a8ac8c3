package bundle

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// Manifest is the build record written at the bundle root. It captures the
// inputs and counts a consumer needs to identify and audit the bundle.
type Manifest struct {
	Identifier string    `json:"identifier"`
	BuildID    string    `json:"build_id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Timestamp  time.Time `json:"timestamp"`
	Inputs     Inputs    `json:"inputs"`
	Pages      int       `json:"pages"`
	Assets     int       `json:"assets"`
	Warnings   int       `json:"warnings,omitempty"`
	Duration   int64     `json:"duration_ms"`
	Status     string    `json:"status"`
}

// Inputs captures what the bundle was built from.
type Inputs struct {
	ContentRoot string `json:"content_root"`
	AssetsRoot  string `json:"assets_root,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	SourceRef   string `json:"source_ref,omitempty"`
	Provider    string `json:"provider"`
	Theme       string `json:"theme"`
	BaseURL     string `json:"base_url,omitempty"`
	Documents   int    `json:"documents"`
}

// ToJSON serializes the manifest.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBundle, "failed to marshal manifest").Build()
	}
	return data, nil
}

// FromJSON deserializes a manifest read back from a bundle.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapError(err, errors.CategoryBundle, "failed to unmarshal manifest").Build()
	}
	return &m, nil
}

// InputHash computes a deterministic hash of the manifest inputs, used to
// detect whether a bundle was built from identical inputs.
func (m *Manifest) InputHash() (string, error) {
	data, err := json.Marshal(m.Inputs)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryBundle, "failed to marshal inputs for hash").Build()
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
