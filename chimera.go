// chimera: Ten-layer precedence merge engine for configuration values
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem only: go-errors, go-timecache)
// - Recompute-on-read: merged views are derived from current layer contents,
//   so there is no cache to invalidate and no locking discipline to get wrong
// - Scalars are never coerced into empty containers; nil and false are values
// - Containers observable through the read interface are always merge nodes,
//   so precedence survives recursive descent
//
// Example Usage:
//
//	node := chimera.New()
//	node.Set(chimera.LayerDefault, map[string]interface{}{"port": 8080})
//	node.Set(chimera.LayerOverride, map[string]interface{}{"port": 9090})
//
//	port, _ := node.Get("port") // 9090
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"fmt"
	"reflect"

	"github.com/agilira/go-errors"
)

// Error codes for Chimera operations
const (
	ErrCodeUnknownLayer    = "CHIMERA_UNKNOWN_LAYER"
	ErrCodeKindMismatch    = "CHIMERA_KIND_MISMATCH"
	ErrCodeInvalidDocument = "CHIMERA_INVALID_DOCUMENT"
	ErrCodeIndexOutOfRange = "CHIMERA_INDEX_OUT_OF_RANGE"
)

// Layer identifies one of the ten precedence slots on a merge node.
// Numerically higher layers win during merge computation.
type Layer int

const (
	// LayerDefault is the weakest layer: built-in defaults.
	LayerDefault Layer = iota

	// LayerEnvDefault holds environment-scoped defaults.
	LayerEnvDefault

	// LayerRoleDefault holds group-scoped defaults.
	LayerRoleDefault

	// LayerForceDefault holds forced defaults that outrank every other
	// default-family member.
	LayerForceDefault

	// LayerNormal holds operator-supplied values.
	LayerNormal

	// LayerOverride holds operator overrides.
	LayerOverride

	// LayerRoleOverride holds group-scoped overrides.
	LayerRoleOverride

	// LayerEnvOverride holds environment-scoped overrides.
	LayerEnvOverride

	// LayerForceOverride holds forced overrides that outrank every other
	// override-family member.
	LayerForceOverride

	// LayerAutomatic is the strongest layer: system-discovered facts.
	LayerAutomatic

	layerCount
)

// layerNames maps Layer ordinals to their canonical external names.
var layerNames = [layerCount]string{
	"default",
	"env_default",
	"role_default",
	"force_default",
	"normal",
	"override",
	"role_override",
	"env_override",
	"force_override",
	"automatic",
}

// defaultFamily groups the four default layers in ascending family order.
// Family members are concatenated, not merged, during sequence resolution.
var defaultFamily = [4]Layer{LayerDefault, LayerEnvDefault, LayerRoleDefault, LayerForceDefault}

// overrideFamily groups the four override layers in ascending family order.
var overrideFamily = [4]Layer{LayerOverride, LayerRoleOverride, LayerEnvOverride, LayerForceOverride}

// String returns the canonical layer name (e.g. "env_default").
func (l Layer) String() string {
	if !l.valid() {
		return fmt.Sprintf("layer(%d)", int(l))
	}
	return layerNames[l]
}

func (l Layer) valid() bool {
	return l >= LayerDefault && l < layerCount
}

// ParseLayer converts a canonical layer name into its Layer value.
// Unknown names are rejected, never silently dropped.
func ParseLayer(name string) (Layer, error) {
	for l, n := range layerNames {
		if n == name {
			return Layer(l), nil
		}
	}
	return 0, errors.New(ErrCodeUnknownLayer, "unknown layer name").
		WithContext("layer", name)
}

// Kind reports how a merge node currently behaves: as a scalar, a mapping,
// or a sequence. The kind is decided by the highest-precedence populated
// layer; a node with no populated layers behaves as a scalar holding nil.
type Kind int

const (
	// KindScalar covers every value that is not a mapping or sequence,
	// including nil and false.
	KindScalar Kind = iota

	// KindMapping marks nodes whose merged view is a string-keyed mapping.
	KindMapping

	// KindSequence marks nodes whose merged view is an ordered sequence.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// layerSlot is one of the ten storage cells on a Node.
// Containers are stored normalized (map[string]interface{} / []interface{});
// their entries stay plain until merge computation wraps them.
type layerSlot struct {
	set   bool
	value interface{}
}

// Node is a single merge node: ten independently settable layers and the
// algorithms that collapse them into one observable value.
//
// Nodes produced by merge computations are never mutated afterwards; only
// nodes constructed directly by a collaborator may have layers reassigned.
// Node provides no synchronization of its own - a caller mutating a node
// while another goroutine reads it must supply its own locking.
type Node struct {
	slots [layerCount]layerSlot
}

// New creates an empty merge node with all ten layers absent.
func New() *Node {
	return &Node{}
}

// NewFromLayers creates a merge node from a map of canonical layer names to
// initial values. Unknown layer names fail with ErrCodeUnknownLayer.
func NewFromLayers(layers map[string]interface{}) (*Node, error) {
	n := New()
	for name, value := range layers {
		if err := n.SetNamed(name, value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Set assigns a value to a layer, replacing any previous value. Mappings and
// sequences are normalized at assignment; scalars (nil and false included)
// are stored verbatim and never treated as empty containers. The change is
// immediately visible to subsequent merge computations.
func (n *Node) Set(layer Layer, value interface{}) error {
	if !layer.valid() {
		return errors.New(ErrCodeUnknownLayer, "layer ordinal out of range").
			WithContext("layer", int(layer))
	}
	n.slots[layer] = layerSlot{set: true, value: normalizeValue(value)}
	return nil
}

// SetNamed assigns a value to the layer identified by its canonical name.
func (n *Node) SetNamed(name string, value interface{}) error {
	layer, err := ParseLayer(name)
	if err != nil {
		return err
	}
	return n.Set(layer, value)
}

// Delete clears a layer back to absent.
func (n *Node) Delete(layer Layer) error {
	if !layer.valid() {
		return errors.New(ErrCodeUnknownLayer, "layer ordinal out of range").
			WithContext("layer", int(layer))
	}
	n.slots[layer] = layerSlot{}
	return nil
}

// Layer returns the value stored at a single layer and whether the layer is
// populated. Container slots come back wrapped as a fresh single-layer node
// so their contents stay mergeable; scalars come back verbatim.
func (n *Node) Layer(layer Layer) (interface{}, bool) {
	if !layer.valid() {
		return nil, false
	}
	slot := n.slots[layer]
	if !slot.set {
		return nil, false
	}
	if isContainer(slot.value) {
		return wrapSingleLayer(layer, slot.value), true
	}
	return slot.value, true
}

// HasLayer reports whether a layer is populated.
func (n *Node) HasLayer(layer Layer) bool {
	return layer.valid() && n.slots[layer].set
}

// Kind returns the node's effective type, decided by the highest-precedence
// populated layer.
func (n *Node) Kind() Kind {
	_, value, ok := n.highestPrecedence()
	if !ok {
		return KindScalar
	}
	return kindOf(value)
}

// IsMapping reports whether the node behaves as a mapping.
func (n *Node) IsMapping() bool {
	return n.Kind() == KindMapping
}

// IsSequence reports whether the node behaves as a sequence.
func (n *Node) IsSequence() bool {
	return n.Kind() == KindSequence
}

// Resolve computes the node's merged view: the merged mapping for a
// mapping node, the merged sequence for a sequence node, and the raw
// highest-precedence value otherwise.
func (n *Node) Resolve() interface{} {
	switch n.Kind() {
	case KindMapping:
		return n.mergedMap()
	case KindSequence:
		return n.mergedSlice()
	default:
		_, value, _ := n.highestPrecedence()
		return value
	}
}

// Get looks a key up through the mapping merge. Missing keys resolve to nil.
// Looking a key up on a sequence node fails with ErrCodeKindMismatch; on a
// scalar node the resolved scalar is returned regardless of the key and the
// misuse handler fires, since that path usually means the caller guessed the
// node's kind wrong.
func (n *Node) Get(key string) (interface{}, error) {
	switch n.Kind() {
	case KindMapping:
		return n.mergedMap()[key], nil
	case KindSequence:
		return nil, errors.New(ErrCodeKindMismatch, "key lookup on a sequence node").
			WithContext("key", key)
	default:
		reportMisuse("Get", KindScalar)
		_, value, _ := n.highestPrecedence()
		return value, nil
	}
}

// Has reports whether the merged mapping contains a key. Non-mapping nodes
// contain no keys.
func (n *Node) Has(key string) bool {
	if n.Kind() != KindMapping {
		return false
	}
	_, ok := n.mergedMap()[key]
	return ok
}

// At looks an index up through the sequence merge. Indexing a mapping node
// fails with ErrCodeKindMismatch; indexing a scalar node returns the
// resolved scalar regardless of the index and fires the misuse handler.
func (n *Node) At(i int) (interface{}, error) {
	switch n.Kind() {
	case KindSequence:
		seq := n.mergedSlice()
		if i < 0 || i >= len(seq) {
			return nil, errors.New(ErrCodeIndexOutOfRange, "sequence index out of range").
				WithContext("index", i).
				WithContext("length", len(seq))
		}
		return seq[i], nil
	case KindMapping:
		return nil, errors.New(ErrCodeKindMismatch, "positional lookup on a mapping node").
			WithContext("index", i)
	default:
		reportMisuse("At", KindScalar)
		_, value, _ := n.highestPrecedence()
		return value, nil
	}
}

// highestPrecedence scans the layers from strongest to weakest and returns
// the first populated one.
func (n *Node) highestPrecedence() (Layer, interface{}, bool) {
	for l := layerCount - 1; l >= LayerDefault; l-- {
		if n.slots[l].set {
			return l, n.slots[l].value, true
		}
	}
	return 0, nil, false
}

// empty reports whether every layer is absent.
func (n *Node) empty() bool {
	for l := LayerDefault; l < layerCount; l++ {
		if n.slots[l].set {
			return false
		}
	}
	return true
}

// wrapSingleLayer creates a fresh node with exactly one layer populated.
// Merge computations use it so nested values keep their originating layer
// and nothing else.
func wrapSingleLayer(layer Layer, value interface{}) *Node {
	child := New()
	child.slots[layer] = layerSlot{set: true, value: value}
	return child
}

// kindOf classifies a normalized value.
func kindOf(value interface{}) Kind {
	switch value.(type) {
	case map[string]interface{}:
		return KindMapping
	case []interface{}:
		return KindSequence
	default:
		return KindScalar
	}
}

// isContainer reports whether a raw value is a mapping or sequence.
// Byte slices and strings are scalars.
func isContainer(value interface{}) bool {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return true
	case nil, string, []byte:
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// normalizeValue converts arbitrary container types to the canonical
// map[string]interface{} / []interface{} shapes. Entries stay plain;
// wrapping of entries happens lazily during merge computation. Assigning a
// node collapses it to its merged plain view first, so layers never end up
// holding each other. Scalars pass through untouched.
func normalizeValue(value interface{}) interface{} {
	switch tv := value.(type) {
	case nil:
		return nil
	case *Node:
		if tv == nil {
			return nil
		}
		switch tv.Kind() {
		case KindMapping:
			m, _ := tv.ToMap()
			return m
		case KindSequence:
			s, _ := tv.ToSlice()
			return s
		default:
			_, raw, _ := tv.highestPrecedence()
			return raw
		}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(tv))
		for k, v := range tv {
			out[k] = v
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(tv))
		copy(out, tv)
		return out
	case string, []byte:
		return tv
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	default:
		return value
	}
}
