// chimera_test.go: Tests for layer storage, kind dispatch and precedence
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import "testing"

// TestParseLayer verifies every canonical name round-trips and unknown
// names are rejected instead of silently dropped.
func TestParseLayer(t *testing.T) {
	names := []string{
		"default", "env_default", "role_default", "force_default",
		"normal",
		"override", "role_override", "env_override", "force_override",
		"automatic",
	}
	for ordinal, name := range names {
		layer, err := ParseLayer(name)
		if err != nil {
			t.Fatalf("ParseLayer(%q) failed: %v", name, err)
		}
		if int(layer) != ordinal {
			t.Errorf("ParseLayer(%q) = %d, want %d", name, int(layer), ordinal)
		}
		if layer.String() != name {
			t.Errorf("Layer(%d).String() = %q, want %q", ordinal, layer.String(), name)
		}
	}

	if _, err := ParseLayer("defaults"); err == nil {
		t.Error("ParseLayer should reject an unknown layer name")
	}
	if _, err := ParseLayer(""); err == nil {
		t.Error("ParseLayer should reject an empty layer name")
	}
}

// TestScalarPrecedence verifies the resolved scalar always comes from the
// numerically highest populated layer.
func TestScalarPrecedence(t *testing.T) {
	node := New()
	node.Set(LayerDefault, 1)
	node.Set(LayerNormal, 2)
	node.Set(LayerOverride, 3)
	node.Set(LayerAutomatic, 4)

	if got := node.Resolve(); got != 4 {
		t.Errorf("Resolve() = %v, want 4 (automatic wins)", got)
	}

	node.Delete(LayerAutomatic)
	if got := node.Resolve(); got != 3 {
		t.Errorf("Resolve() after deleting automatic = %v, want 3", got)
	}

	node.Delete(LayerOverride)
	if got := node.Resolve(); got != 2 {
		t.Errorf("Resolve() after deleting override = %v, want 2", got)
	}
}

// TestScalarPrecedenceAllLayers walks each layer individually so every
// ordinal is exercised, not only the common four.
func TestScalarPrecedenceAllLayers(t *testing.T) {
	node := New()
	for l := LayerDefault; l < layerCount; l++ {
		node.Set(l, l.String())
		if got := node.Resolve(); got != l.String() {
			t.Errorf("after populating %s, Resolve() = %v, want %q", l, got, l.String())
		}
	}
}

// TestEffectiveKind verifies kind dispatch follows the highest-precedence
// populated layer, not the mere presence of a container anywhere.
func TestEffectiveKind(t *testing.T) {
	tests := []struct {
		name   string
		layers map[string]interface{}
		want   Kind
	}{
		{
			name:   "No layers behaves as scalar",
			layers: map[string]interface{}{},
			want:   KindScalar,
		},
		{
			name:   "Single scalar layer",
			layers: map[string]interface{}{"normal": 42},
			want:   KindScalar,
		},
		{
			name:   "Single mapping layer",
			layers: map[string]interface{}{"default": map[string]interface{}{"a": 1}},
			want:   KindMapping,
		},
		{
			name:   "Single sequence layer",
			layers: map[string]interface{}{"override": []interface{}{1, 2}},
			want:   KindSequence,
		},
		{
			name: "Scalar above mapping wins kind",
			layers: map[string]interface{}{
				"default":   map[string]interface{}{"a": 1},
				"automatic": "shadowed",
			},
			want: KindScalar,
		},
		{
			name: "Mapping above sequence wins kind",
			layers: map[string]interface{}{
				"default":  []interface{}{1},
				"override": map[string]interface{}{"a": 1},
			},
			want: KindMapping,
		},
		{
			name: "Nil at a high layer is a scalar, not an empty container",
			layers: map[string]interface{}{
				"override":  map[string]interface{}{"a": 1},
				"automatic": nil,
			},
			want: KindScalar,
		},
		{
			name: "False is a scalar value",
			layers: map[string]interface{}{
				"default": map[string]interface{}{"a": 1},
				"normal":  false,
			},
			want: KindScalar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewFromLayers(tt.layers)
			if err != nil {
				t.Fatalf("NewFromLayers failed: %v", err)
			}
			if got := node.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if got := node.IsMapping(); got != (tt.want == KindMapping) {
				t.Errorf("IsMapping() = %v with kind %v", got, tt.want)
			}
			if got := node.IsSequence(); got != (tt.want == KindSequence) {
				t.Errorf("IsSequence() = %v with kind %v", got, tt.want)
			}
		})
	}
}

// TestNewFromLayersUnknownName verifies construction rejects unknown layer
// names outright.
func TestNewFromLayersUnknownName(t *testing.T) {
	_, err := NewFromLayers(map[string]interface{}{
		"default":        1,
		"froce_override": 2,
	})
	if err == nil {
		t.Fatal("NewFromLayers should fail on an unknown layer name")
	}
}

// TestAbsentEverywhere verifies an empty node behaves as a scalar holding
// nil and converts to the empty plain forms.
func TestAbsentEverywhere(t *testing.T) {
	node := New()

	if node.Kind() != KindScalar {
		t.Errorf("empty node Kind() = %v, want scalar", node.Kind())
	}
	if got := node.Resolve(); got != nil {
		t.Errorf("empty node Resolve() = %v, want nil", got)
	}
	m, err := node.ToMap()
	if err != nil {
		t.Fatalf("empty node ToMap failed: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("empty node ToMap() = %v, want empty map", m)
	}
	s, err := node.ToSlice()
	if err != nil {
		t.Fatalf("empty node ToSlice failed: %v", err)
	}
	if len(s) != 0 {
		t.Errorf("empty node ToSlice() = %v, want empty slice", s)
	}
}

// TestLayerAccess verifies per-layer access: scalars come back verbatim,
// containers come back wrapped as single-layer nodes.
func TestLayerAccess(t *testing.T) {
	node := New()
	node.Set(LayerNormal, "plain")
	node.Set(LayerDefault, map[string]interface{}{"a": 1})

	value, ok := node.Layer(LayerNormal)
	if !ok || value != "plain" {
		t.Errorf("Layer(normal) = %v, %v; want plain, true", value, ok)
	}

	value, ok = node.Layer(LayerDefault)
	if !ok {
		t.Fatal("Layer(default) should be populated")
	}
	wrapped, isNode := value.(*Node)
	if !isNode {
		t.Fatalf("Layer(default) = %T, want *Node wrapping the container", value)
	}
	if !wrapped.HasLayer(LayerDefault) || wrapped.HasLayer(LayerNormal) {
		t.Error("wrapped container should carry only its originating layer")
	}
	got, err := wrapped.Get("a")
	if err != nil || got != 1 {
		t.Errorf("wrapped.Get(a) = %v, %v; want 1", got, err)
	}

	if _, ok := node.Layer(LayerAutomatic); ok {
		t.Error("Layer(automatic) should report absent")
	}
}

// TestSetInvalidLayer verifies out-of-range ordinals are rejected.
func TestSetInvalidLayer(t *testing.T) {
	node := New()
	if err := node.Set(Layer(-1), 1); err == nil {
		t.Error("Set should reject a negative layer ordinal")
	}
	if err := node.Set(layerCount, 1); err == nil {
		t.Error("Set should reject an out-of-range layer ordinal")
	}
	if err := node.Delete(layerCount); err == nil {
		t.Error("Delete should reject an out-of-range layer ordinal")
	}
}

// TestReassignmentIsImmediatelyVisible verifies there is no cached merge
// state: reassigning a layer changes the next read.
func TestReassignmentIsImmediatelyVisible(t *testing.T) {
	node := New()
	node.Set(LayerDefault, map[string]interface{}{"a": 1})

	if got, _ := node.Get("a"); got != 1 {
		t.Fatalf("Get(a) = %v, want 1", got)
	}

	node.Set(LayerDefault, map[string]interface{}{"a": 7})
	if got, _ := node.Get("a"); got != 7 {
		t.Errorf("Get(a) after reassignment = %v, want 7", got)
	}
}

// TestNormalization verifies non-canonical container types are accepted
// at assignment and behave like their canonical shapes, while byte slices
// stay scalars.
func TestNormalization(t *testing.T) {
	node := New()

	node.Set(LayerDefault, map[interface{}]interface{}{"a": 1})
	if node.Kind() != KindMapping {
		t.Errorf("map[interface{}]interface{} should normalize to a mapping, got %v", node.Kind())
	}
	if got, _ := node.Get("a"); got != 1 {
		t.Errorf("Get(a) on normalized mapping = %v, want 1", got)
	}

	node.Set(LayerNormal, []string{"x", "y"})
	if node.Kind() != KindSequence {
		t.Errorf("[]string should normalize to a sequence, got %v", node.Kind())
	}
	seq, err := node.Slice()
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if len(seq) != 2 || seq[0] != "x" || seq[1] != "y" {
		t.Errorf("normalized sequence = %v, want [x y]", seq)
	}

	node.Set(LayerAutomatic, []byte("blob"))
	if node.Kind() != KindScalar {
		t.Errorf("[]byte should stay a scalar, got %v", node.Kind())
	}
}

// TestNodeAssignmentCollapses verifies assigning a node to a layer stores
// its merged plain view rather than nesting node inside node.
func TestNodeAssignmentCollapses(t *testing.T) {
	source := New()
	source.Set(LayerDefault, map[string]interface{}{"a": 1})
	source.Set(LayerOverride, map[string]interface{}{"b": 2})

	node := New()
	node.Set(LayerNormal, source)

	if node.Kind() != KindMapping {
		t.Fatalf("Kind() = %v, want mapping", node.Kind())
	}
	m, err := node.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	if m["a"] != 1 || m["b"] != 2 {
		t.Errorf("ToMap() = %v, want both source layers' keys collapsed", m)
	}
}
