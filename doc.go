// Package chimera implements a ten-layer precedence merge engine for
// configuration values: one recursive node type that accepts the same
// logical setting from up to ten independently-owned sources and computes
// a single coherent view on demand, while keeping every individual layer
// inspectable.
//
// # Philosophy: One Value, Many Owners
//
// Configuration-management agents receive the same setting from built-in
// defaults, environment- and group-scoped defaults, forced defaults,
// operator values, several override scopes, and system-discovered facts.
// Downstream code wants exactly one answer per key. Chimera holds all ten
// sources side by side and collapses them only when read, so precedence is
// always computed from current contents and there is never a stale cache
// to invalidate.
//
// # The Ten Layers
//
// In ascending precedence order:
//
//	default, env_default, role_default, force_default,
//	normal,
//	override, role_override, env_override, force_override,
//	automatic
//
// The first four form the default family and the override block forms the
// override family; families matter for sequence resolution and for the
// derived DefaultsOnly / OverridesOnly views.
//
// # Three Merge Strategies
//
// A node's effective kind follows its highest-precedence populated layer,
// and each kind merges differently:
//
//   - Scalars override: the strongest populated layer wins outright.
//   - Mappings merge one level deep: every key becomes a child node
//     holding only the layers that defined it, so nested structures stay
//     precedence-correct at every depth and merge lazily as they are read.
//   - Sequences replace group-wise: automatic beats the override family,
//     which beats normal, which beats the default family; within a family
//     the members' sequences concatenate in family order.
//
// # Quick Start
//
//	node := chimera.New()
//	node.Set(chimera.LayerDefault, map[string]interface{}{
//		"host": "localhost",
//		"tls":  map[string]interface{}{"verify": true},
//	})
//	node.Set(chimera.LayerEnvOverride, map[string]interface{}{
//		"host": "db.internal",
//	})
//
//	host, _ := node.Get("host")     // "db.internal"
//	doc, _ := node.ToJSON()         // {"host":"db.internal","tls":{"verify":true}}
//	defaults := node.DefaultsOnly() // resolves host to "localhost"
//
// # What Chimera Does Not Do
//
// Chimera is the merge engine only. It does not load configuration from
// disk or network, decide which layer a write belongs to, persist
// anything, or expose a CLI. Encoding stops at handing a fully
// dereferenced plain structure to the JSON or YAML encoder, and decoding
// starts from bytes the caller already has.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package chimera
