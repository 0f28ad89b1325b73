// SPDX-License-Identifier: MIT
// Package: lvmesh/codec
//
// json.go: snapshot documents in JSON.

package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/lvmesh/tria"
)

// JSONCodec reads and writes snapshot documents as JSON.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse decodes one JSON document into a snapshot.
func (c *JSONCodec) Parse(r io.Reader) (*tria.Snapshot, error) {
	var doc document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return doc.toSnapshot()
}

// Export encodes snap as indented JSON.
func (c *JSONCodec) Export(snap *tria.Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fromSnapshot(snap)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
