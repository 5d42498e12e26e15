package display

import "sync/atomic"

// atomicIndex is a 0/1 buffer index with acquire/release semantics, per
// spec.md §9's "language-appropriate atomic-ordering primitives; acquire/
// release on the index is sufficient".
type atomicIndex struct {
	v atomic.Uint32
}

func (a *atomicIndex) Load() int   { return int(a.v.Load()) }
func (a *atomicIndex) Store(i int) { a.v.Store(uint32(i)) }
