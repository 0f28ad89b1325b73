// SPDX-License-Identifier: MIT
// Package: lvmesh/codec
//
// yaml.go: snapshot documents in YAML.

package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmesh/tria"
)

// YAMLCodec reads and writes snapshot documents as YAML.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier.
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse decodes one YAML document into a snapshot.
func (c *YAMLCodec) Parse(r io.Reader) (*tria.Snapshot, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return doc.toSnapshot()
}

// Export encodes snap as one YAML document.
func (c *YAMLCodec) Export(snap *tria.Snapshot, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(fromSnapshot(snap)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
