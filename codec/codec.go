// SPDX-License-Identifier: MIT
// Package: lvmesh/codec
//
// codec.go: format interfaces and lookup by name or file extension.

package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvmesh/tria"
)

// ErrUnknownFormat is returned for a format name or extension no codec handles.
var ErrUnknownFormat = errors.New("codec: unknown format")

// ErrDocument is returned when a decoded document cannot describe a snapshot.
var ErrDocument = errors.New("codec: malformed document")

// Importer reads a snapshot from a serialized document.
type Importer interface {
	Parse(r io.Reader) (*tria.Snapshot, error)
	Format() string
}

// Exporter writes a snapshot as a serialized document.
type Exporter interface {
	Export(snap *tria.Snapshot, w io.Writer) error
	Format() string
}

// Codec both reads and writes one format.
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under name ("yaml" or "json").
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// ForPath picks the codec by the extension of path.
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%q has no extension: %w", path, ErrUnknownFormat)
	}

	return ForFormat(ext)
}
