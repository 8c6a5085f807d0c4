// trace.go: Per-key layer provenance and misuse reporting for Chimera
//
// The trace answers "who set this key, and who won" without callers
// fabricating derived views per layer: one pass over the ten slots records
// each layer's contribution in ascending precedence order. The misuse
// handler surfaces the one sharp edge the read interface tolerates by
// contract - indexing a scalar node - so operators can spot callers that
// guessed a node's kind wrong. Timestamps use go-timecache to keep both
// paths allocation-friendly.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package chimera

import (
	"sync"

	"github.com/agilira/go-timecache"
)

// TraceEntry records one layer's contribution to a traced key.
// Value holds the raw per-layer value (containers stay plain here; the
// trace is diagnostic, not a merge surface).
type TraceEntry struct {
	Layer   string      `json:"layer"`
	Present bool        `json:"present"`
	Value   interface{} `json:"value,omitempty"`
}

// Trace is the provenance chain for a single mapping key: every layer's
// contribution in ascending precedence order plus the winning layer.
type Trace struct {
	Key      string       `json:"key"`
	Found    bool         `json:"found"`
	Winner   string       `json:"winner,omitempty"`
	Layers   []TraceEntry `json:"layers"`
	TracedAt int64        `json:"traced_at"` // unix nanoseconds, from timecache
}

// Trace reports how each layer contributes to a mapping key. Layers whose
// slot is not a mapping, or whose mapping lacks the key, appear as absent
// entries so the chain always has ten rows. The winner is the
// highest-precedence layer defining the key. On non-mapping nodes every
// entry is absent and Found is false.
func (n *Node) Trace(key string) Trace {
	trace := Trace{
		Key:      key,
		Layers:   make([]TraceEntry, 0, layerCount),
		TracedAt: timecache.CachedTimeNano(),
	}

	for l := LayerDefault; l < layerCount; l++ {
		entry := TraceEntry{Layer: l.String()}
		if slot := n.slots[l]; slot.set {
			if m, ok := slot.value.(map[string]interface{}); ok {
				if value, exists := m[key]; exists {
					entry.Present = true
					entry.Value = value
					trace.Found = true
					trace.Winner = l.String()
				}
			}
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return trace
}

// MisuseEvent describes an indexing operation performed on a node whose
// effective kind does not support it but which the contract answers
// defensively instead of failing.
type MisuseEvent struct {
	Op   string // "Get" or "At"
	Kind Kind   // the node's effective kind at the time
	At   int64  // unix nanoseconds, from timecache
}

// MisuseHandler receives misuse events. Handlers run synchronously on the
// calling goroutine and must not block.
type MisuseHandler func(event MisuseEvent)

var (
	misuseMu      sync.RWMutex
	misuseHandler MisuseHandler
)

// SetMisuseHandler installs a package-wide handler fired whenever a scalar
// node is indexed by key or position. Passing nil restores the default
// silent behavior. Indexing a scalar node is not an error by contract, but
// it almost always means the caller misjudged the node's kind.
func SetMisuseHandler(handler MisuseHandler) {
	misuseMu.Lock()
	misuseHandler = handler
	misuseMu.Unlock()
}

func reportMisuse(op string, kind Kind) {
	misuseMu.RLock()
	handler := misuseHandler
	misuseMu.RUnlock()
	if handler != nil {
		handler(MisuseEvent{Op: op, Kind: kind, At: timecache.CachedTimeNano()})
	}
}
