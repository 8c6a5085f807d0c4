// views.go: Derived views, deep conversion and iteration for Chimera
//
// Derived views answer precedence-policy questions ("what would this resolve
// to considering only defaults") without fabricating a parallel structure:
// they are ordinary nodes carrying a subset of the layers. Deep conversion
// dereferences every child node into plain Go values for callers that want
// a layer-free structure.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"iter"

	"github.com/agilira/go-errors"
)

// DefaultsOnly returns a fresh node carrying only the four default-family
// layers (default, env_default, role_default, force_default). The normal
// and automatic layers stay absent, so the view resolves as if nothing
// stronger than a default were ever set.
func (n *Node) DefaultsOnly() *Node {
	out := New()
	for _, layer := range defaultFamily {
		out.slots[layer] = n.slots[layer]
	}
	return out
}

// OverridesOnly returns a fresh node carrying only the four override-family
// layers (override, role_override, env_override, force_override).
func (n *Node) OverridesOnly() *Node {
	out := New()
	for _, layer := range overrideFamily {
		out.slots[layer] = n.slots[layer]
	}
	return out
}

// ToMap deep-converts a mapping node into an ordinary map: child nodes
// become plain maps and slices, scalars pass through. A node with no
// populated layers converts to an empty map. Conversion to a mapping is
// only defined for mapping nodes; sequence and scalar nodes fail with
// ErrCodeKindMismatch rather than being coerced.
func (n *Node) ToMap() (map[string]interface{}, error) {
	if kind := n.Kind(); kind != KindMapping {
		if n.empty() {
			return map[string]interface{}{}, nil
		}
		return nil, errors.New(ErrCodeKindMismatch, "deep mapping conversion on a "+kind.String()+" node")
	}

	merged := n.mergedMap()
	out := make(map[string]interface{}, len(merged))
	for key, value := range merged {
		out[key] = deepValue(value)
	}
	return out, nil
}

// ToSlice deep-converts a sequence node into an ordinary slice,
// symmetrically to ToMap.
func (n *Node) ToSlice() ([]interface{}, error) {
	if kind := n.Kind(); kind != KindSequence {
		if n.empty() {
			return []interface{}{}, nil
		}
		return nil, errors.New(ErrCodeKindMismatch, "deep sequence conversion on a "+kind.String()+" node")
	}

	merged := n.mergedSlice()
	out := make([]interface{}, len(merged))
	for i, value := range merged {
		out[i] = deepValue(value)
	}
	return out, nil
}

// deepValue dereferences one merged entry: child nodes collapse into their
// deep plain form, everything else passes through.
func deepValue(value interface{}) interface{} {
	child, ok := value.(*Node)
	if !ok {
		return value
	}
	switch child.Kind() {
	case KindMapping:
		m, _ := child.ToMap()
		return m
	case KindSequence:
		s, _ := child.ToSlice()
		return s
	default:
		_, raw, _ := child.highestPrecedence()
		return raw
	}
}

// Pairs returns a lazy, restartable iterator over the merged mapping.
// Values come back as the merge produced them: child nodes for containers,
// bare scalars for leaves. Non-mapping nodes yield nothing. The iterator
// recomputes the merge each time it is ranged over, so it always reflects
// the current layer contents.
func (n *Node) Pairs() iter.Seq2[string, interface{}] {
	return func(yield func(string, interface{}) bool) {
		if n.Kind() != KindMapping {
			return
		}
		for key, value := range n.mergedMap() {
			if !yield(key, value) {
				return
			}
		}
	}
}

// Values returns a lazy, restartable iterator over the merged view: the
// merged elements for a sequence node, the merged mapping's values for a
// mapping node, and a single element holding the resolved value for a
// scalar node.
func (n *Node) Values() iter.Seq[interface{}] {
	return func(yield func(interface{}) bool) {
		switch n.Kind() {
		case KindSequence:
			for _, value := range n.mergedSlice() {
				if !yield(value) {
					return
				}
			}
		case KindMapping:
			for _, value := range n.mergedMap() {
				if !yield(value) {
					return
				}
			}
		default:
			_, value, _ := n.highestPrecedence()
			yield(value)
		}
	}
}
