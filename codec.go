// codec.go: JSON and YAML hand-off for Chimera
//
// Encoding ends this engine's responsibility at a fully dereferenced,
// layer-free plain structure: the deep conversion runs first, then the
// bytes come from the standard JSON encoder or the YAML stack. Decoding
// goes the other way - a caller hands in document bytes and names the layer
// they belong to; reading files stays the caller's business.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"encoding/json"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// ToJSON encodes the node's deep plain conversion as a JSON document:
// an object for a mapping node, an array for a sequence node, a bare
// scalar otherwise (absent encodes as null). Object keys come out in the
// encoder's sorted order; mapping key order carries no meaning.
func (n *Node) ToJSON() ([]byte, error) {
	value, err := n.plainValue()
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

// MarshalJSON lets a node embed directly into a larger JSON document.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.ToJSON()
}

// ToYAML encodes the node's deep plain conversion as a YAML document.
func (n *Node) ToYAML() ([]byte, error) {
	value, err := n.plainValue()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(value)
}

// plainValue produces the deep, layer-free form of the merged view.
func (n *Node) plainValue() (interface{}, error) {
	switch n.Kind() {
	case KindMapping:
		return n.ToMap()
	case KindSequence:
		return n.ToSlice()
	default:
		_, value, _ := n.highestPrecedence()
		return value, nil
	}
}

// SetJSON decodes a JSON document and assigns it to a layer. The decoded
// value may be a scalar, object or array; assignment follows the usual
// normalization rules.
func (n *Node) SetJSON(layer Layer, data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.Wrap(err, ErrCodeInvalidDocument, "invalid JSON layer document").
			WithContext("layer", layer.String())
	}
	return n.Set(layer, value)
}

// SetYAML decodes a YAML document and assigns it to a layer.
func (n *Node) SetYAML(layer Layer, data []byte) error {
	var value interface{}
	if err := yaml.Unmarshal(data, &value); err != nil {
		return errors.Wrap(err, ErrCodeInvalidDocument, "invalid YAML layer document").
			WithContext("layer", layer.String())
	}
	return n.Set(layer, value)
}
