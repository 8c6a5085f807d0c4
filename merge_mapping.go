// merge_mapping.go: One-level-deep mapping merge for Chimera
//
// The mapping merge walks the ten layers in ascending precedence order and
// produces one merged mapping per call. Each merged key gets its own child
// node holding only the layers that actually defined that key, so recursive
// descent stays precedence-correct at every depth. Keys whose winning value
// is a scalar surface undecorated.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"github.com/agilira/go-errors"
)

// Map computes the merged mapping view. The merge is one level deep: nested
// containers stay wrapped as child nodes carrying their own per-layer
// structure and merge lazily when read. Keys whose highest-precedence value
// is a scalar (nil and false included) surface as bare scalars.
//
// A node with no populated layers yields an empty mapping; any other
// non-mapping node fails with ErrCodeKindMismatch.
func (n *Node) Map() (map[string]interface{}, error) {
	if kind := n.Kind(); kind != KindMapping {
		if n.empty() {
			return map[string]interface{}{}, nil
		}
		return nil, errors.New(ErrCodeKindMismatch, "merged mapping requested on a "+kind.String()+" node")
	}
	return n.mergedMap(), nil
}

// mergedMap implements the mapping merge without the kind guard. Layers
// holding scalars or sequences contribute nothing: a scalar at some layer
// never behaves as an empty mapping.
func (n *Node) mergedMap() map[string]interface{} {
	out := make(map[string]interface{})
	collapsed := make(map[string]interface{})

	for l := LayerDefault; l < layerCount; l++ {
		slot := n.slots[l]
		if !slot.set {
			continue
		}
		m, ok := slot.value.(map[string]interface{})
		if !ok {
			continue
		}
		for key, value := range m {
			child, ok := out[key].(*Node)
			if !ok {
				child = New()
				out[key] = child
			}
			child.slots[l] = layerSlot{set: true, value: normalizeValue(value)}
			collapsed[key] = value
		}
	}

	// Scalar winners replace their child node so leaves come back plain.
	for key, value := range collapsed {
		if !isContainer(value) {
			out[key] = value
		}
	}
	return out
}
