// merge_sequence.go: Group-wise sequence resolution for Chimera
//
// Sequences are not deep-merged. Four candidate groups are evaluated in
// strict priority order - automatic, the override family, normal, the
// default family - and the first group holding any sequence wins outright.
// Within a family, member sequences concatenate positionally in family
// order. Elements that are themselves containers wrap as fresh nodes with
// only their originating layer populated: cross-layer provenance for nested
// sequence elements is intentionally not preserved beyond that one layer.
// That precision loss is a documented property of group-wise replacement,
// not a defect to compensate for.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"github.com/agilira/go-errors"
)

// Slice computes the merged sequence view. A node with no populated layers
// yields an empty sequence; any other non-sequence node fails with
// ErrCodeKindMismatch.
func (n *Node) Slice() ([]interface{}, error) {
	if kind := n.Kind(); kind != KindSequence {
		if n.empty() {
			return []interface{}{}, nil
		}
		return nil, errors.New(ErrCodeKindMismatch, "merged sequence requested on a "+kind.String()+" node")
	}
	return n.mergedSlice(), nil
}

// mergedSlice picks the winning candidate group. nil means no group holds
// a sequence at all; a present-but-empty sequence still wins its group.
func (n *Node) mergedSlice() []interface{} {
	if seq, ok := n.sequenceAt(LayerAutomatic); ok {
		return wrapElements(LayerAutomatic, seq)
	}
	if seq, ok := n.familySequence(overrideFamily); ok {
		return seq
	}
	if seq, ok := n.sequenceAt(LayerNormal); ok {
		return wrapElements(LayerNormal, seq)
	}
	if seq, ok := n.familySequence(defaultFamily); ok {
		return seq
	}
	return nil
}

// sequenceAt returns the raw sequence stored at a layer, if that layer
// holds one. Scalars and mappings at the layer do not count.
func (n *Node) sequenceAt(layer Layer) ([]interface{}, bool) {
	slot := n.slots[layer]
	if !slot.set {
		return nil, false
	}
	seq, ok := slot.value.([]interface{})
	return seq, ok
}

// familySequence concatenates the sequences present across a four-member
// family, layer by layer in ascending family order. Elements never merge
// index-by-index across members. The second return is false when no member
// holds a sequence, so an absent family can be told apart from one that
// resolved to an empty sequence.
func (n *Node) familySequence(family [4]Layer) ([]interface{}, bool) {
	found := false
	var out []interface{}
	for _, layer := range family {
		seq, ok := n.sequenceAt(layer)
		if !ok {
			continue
		}
		found = true
		out = append(out, wrapElements(layer, seq)...)
	}
	if !found {
		return nil, false
	}
	if out == nil {
		out = []interface{}{}
	}
	return out, true
}

// wrapElements copies a layer's sequence, wrapping container elements as
// single-layer nodes on their originating layer. The normal and automatic
// layers wrap on their own name, mirroring the family members.
func wrapElements(layer Layer, seq []interface{}) []interface{} {
	out := make([]interface{}, len(seq))
	for i, element := range seq {
		element = normalizeValue(element)
		if isContainer(element) {
			out[i] = wrapSingleLayer(layer, element)
			continue
		}
		out[i] = element
	}
	return out
}
