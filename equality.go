// equality.go: Deep equality across merge nodes and plain values
//
// Two nodes compare through their merged views, so layering never leaks
// into equality: a node equals a plain mapping when every merged key
// matches recursively, a plain sequence when every index matches
// positionally, and a plain scalar when the resolved value matches.
// Comparing against an incompatible kind is simply "not equal", never an
// error.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import "reflect"

// Equal reports whether the node's merged view equals another value.
// The other side may be a *Node, a plain container, or a scalar. Scalar
// comparison tolerates numeric type differences (an int layer value equals
// the float64 that a JSON decode produces), and any string-keyed map or
// non-byte slice counts as a container.
func (n *Node) Equal(other interface{}) bool {
	return equalValue(n, other, false)
}

// StrictEqual is Equal with literal typing: the compared side must actually
// be a map[string]interface{}, a []interface{}, or a scalar of the
// identical dynamic type - merely convertible values do not match. Nodes on
// either side still compare through their merged views.
func (n *Node) StrictEqual(other interface{}) bool {
	return equalValue(n, other, true)
}

func equalValue(a, b interface{}, strict bool) bool {
	if an, ok := a.(*Node); ok {
		switch an.Kind() {
		case KindMapping:
			bm, ok := mappingOf(b, strict)
			if !ok {
				return false
			}
			am := an.mergedMap()
			if len(am) != len(bm) {
				return false
			}
			for key, av := range am {
				bv, exists := bm[key]
				if !exists || !equalValue(av, bv, strict) {
					return false
				}
			}
			return true
		case KindSequence:
			bs, ok := sequenceOf(b, strict)
			if !ok {
				return false
			}
			as := an.mergedSlice()
			if len(as) != len(bs) {
				return false
			}
			for i := range as {
				if !equalValue(as[i], bs[i], strict) {
					return false
				}
			}
			return true
		default:
			_, av, _ := an.highestPrecedence()
			return equalValue(av, b, strict)
		}
	}
	if _, ok := b.(*Node); ok {
		return equalValue(b, a, strict)
	}

	if strict {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		if reflect.TypeOf(a) != reflect.TypeOf(b) {
			return false
		}
		return reflect.DeepEqual(a, b)
	}
	return looseEqual(a, b)
}

// mappingOf extracts a comparable mapping from the other side. Under strict
// typing only the canonical map type (or a mapping node) qualifies.
func mappingOf(value interface{}, strict bool) (map[string]interface{}, bool) {
	switch tv := value.(type) {
	case map[string]interface{}:
		return tv, true
	case *Node:
		if tv != nil && tv.Kind() == KindMapping {
			return tv.mergedMap(), true
		}
		return nil, false
	}
	if strict {
		return nil, false
	}
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.Map {
		m, ok := normalizeValue(value).(map[string]interface{})
		return m, ok
	}
	return nil, false
}

// sequenceOf extracts a comparable sequence from the other side,
// symmetrically to mappingOf.
func sequenceOf(value interface{}, strict bool) ([]interface{}, bool) {
	switch tv := value.(type) {
	case []interface{}:
		return tv, true
	case *Node:
		if tv != nil && tv.Kind() == KindSequence {
			return tv.mergedSlice(), true
		}
		return nil, false
	}
	if strict {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		s, ok := normalizeValue(value).([]interface{})
		return s, ok
	}
	return nil, false
}

func looseEqual(a, b interface{}) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(value interface{}) (float64, bool) {
	switch tv := value.(type) {
	case int:
		return float64(tv), true
	case int8:
		return float64(tv), true
	case int16:
		return float64(tv), true
	case int32:
		return float64(tv), true
	case int64:
		return float64(tv), true
	case uint:
		return float64(tv), true
	case uint8:
		return float64(tv), true
	case uint16:
		return float64(tv), true
	case uint32:
		return float64(tv), true
	case uint64:
		return float64(tv), true
	case float32:
		return float64(tv), true
	case float64:
		return tv, true
	default:
		return 0, false
	}
}
