// intern.go: structural interning — deduplicating read-only composite
// values by content hash.
//
// Two auxiliary open-addressed tables (one for objects, one for
// arrays) map a content hash to the arena index of the canonical
// frozen record. Unlike the object arena's hash slots, GC can free an
// interned record at any time, so repair uses tombstones rather than
// backward-shift deletion: backward-shift assumes the table never
// loses entries out of insertion order, which a GC sweep interleaved
// with arbitrary application code cannot guarantee.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "github.com/cespare/xxhash/v2"

type internState uint8

const (
	internStateEmpty internState = iota
	internStateUsed
	internStateTombstone
)

type internSlot struct {
	hash  uint32
	idx   uint32
	state internState
}

type internTable struct {
	slots []internSlot
	count int // live entries (not counting tombstones)
	live  int // count + tombstones, drives growth
}

func newInternTable() *internTable {
	return &internTable{slots: make([]internSlot, 8)}
}

func (t *internTable) mask() uint32 { return uint32(len(t.slots) - 1) }

// find probes for hash, calling match(idx) to test candidate entries
// for content equality. It returns the arena index on a hit; on a
// miss it returns the slot position to insert at (preferring the first
// tombstone it passed over).
func (t *internTable) find(hash uint32, match func(idx uint32) bool) (found bool, idx uint32, insertAt uint32) {
	mask := t.mask()
	pos := hash & mask
	firstTomb, haveTomb := uint32(0), false
	for {
		s := &t.slots[pos]
		switch s.state {
		case internStateEmpty:
			if haveTomb {
				return false, 0, firstTomb
			}
			return false, 0, pos
		case internStateTombstone:
			if !haveTomb {
				firstTomb, haveTomb = pos, true
			}
		case internStateUsed:
			if s.hash == hash && match(s.idx) {
				return true, s.idx, 0
			}
		}
		pos = (pos + 1) & mask
	}
}

func (t *internTable) insertAt(pos uint32, hash uint32, idx uint32) {
	wasTomb := t.slots[pos].state == internStateTombstone
	t.slots[pos] = internSlot{hash: hash, idx: idx, state: internStateUsed}
	t.count++
	if !wasTomb {
		t.live++
	}
	if t.live*2 >= len(t.slots) {
		t.grow()
	}
}

func (t *internTable) grow() {
	old := t.slots
	t.slots = make([]internSlot, len(old)*2)
	t.count, t.live = 0, 0
	for _, s := range old {
		if s.state == internStateUsed {
			pos := s.hash & t.mask()
			for t.slots[pos].state == internStateUsed {
				pos = (pos + 1) & t.mask()
			}
			t.slots[pos] = internSlot{hash: s.hash, idx: s.idx, state: internStateUsed}
			t.count++
			t.live++
		}
	}
}

// remove tombstones the entry for arena index idx, if present. Called
// from the GC sweep when a frozen record is collected.
func (t *internTable) remove(idx uint32) {
	for i := range t.slots {
		if t.slots[i].state == internStateUsed && t.slots[i].idx == idx {
			t.slots[i].state = internStateTombstone
			t.count--
			return
		}
	}
}

// hashObjectPairs hashes an object's pair array only (keys and
// values; the hash slots are derived state and excluded).
func hashObjectPairs(r *objectRecord) uint32 {
	d := xxhash.New()
	var buf [8]byte
	for i := 0; i < r.count; i++ {
		putUint64(buf[:], uint64(r.keys[i]))
		d.Write(buf[:])
		putUint64(buf[:], r.vals[i].bits)
		d.Write(buf[:])
		d.Write([]byte{byte(r.vals[i].kind)})
	}
	h := uint32(d.Sum64())
	if h == 0 {
		h = 0x85ebca6b
	}
	return h
}

func hashArrayItems(r *arrayRecord) uint32 {
	d := xxhash.New()
	var buf [8]byte
	for i := 0; i < r.count; i++ {
		putUint64(buf[:], r.items[i].bits)
		d.Write(buf[:])
		d.Write([]byte{byte(r.items[i].kind)})
	}
	h := uint32(d.Sum64())
	if h == 0 {
		h = 0x85ebca6b
	}
	return h
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func objectPairsEqual(a, b *objectRecord) bool {
	if a.count != b.count {
		return false
	}
	for i := 0; i < a.count; i++ {
		if a.keys[i] != b.keys[i] || !a.vals[i].Equal(b.vals[i]) {
			return false
		}
	}
	return true
}

func arrayItemsEqual(a, b *arrayRecord) bool {
	if a.count != b.count {
		return false
	}
	for i := 0; i < a.count; i++ {
		if !a.items[i].Equal(b.items[i]) {
			return false
		}
	}
	return true
}

// objectChildrenFrozen reports whether every value of r is eligible for
// interning: primitive values are always eligible, composite children
// must already be read-only.
func (ctx *Context) objectChildrenFrozen(r *objectRecord) bool {
	for i := 0; i < r.count; i++ {
		if !ctx.valueFrozen(r.vals[i]) {
			return false
		}
	}
	return true
}

func (ctx *Context) arrayChildrenFrozen(r *arrayRecord) bool {
	for i := 0; i < r.count; i++ {
		if !ctx.valueFrozen(r.items[i]) {
			return false
		}
	}
	return true
}

func (ctx *Context) valueFrozen(v Value) bool {
	switch v.Kind() {
	case KindObject:
		return ctx.objects.rec(v.index()).readOnly
	case KindArray:
		return ctx.arrays.rec(v.index()).readOnly
	default:
		return true
	}
}

// internObject canonicalizes an OBJECT value by content.
func (ctx *Context) internObject(v Value, consume bool) (Value, error) {
	idx := v.index()
	r := ctx.objects.rec(idx)
	if r.readOnly {
		return v, nil // interning twice is idempotent
	}
	if !ctx.objectChildrenFrozen(r) {
		return Value{}, ErrTypeError("intern_value: mutable child", KindObject)
	}
	hash := hashObjectPairs(r)
	found, existing, insertAt := ctx.internObjs.find(hash, func(cand uint32) bool {
		return objectPairsEqual(r, ctx.objects.rec(cand))
	})
	if found {
		return objectValue(existing), nil
	}
	var target uint32
	if consume {
		target = idx
	} else {
		target = ctx.objects.alloc(r.capacity)
		dst := ctx.objects.rec(target)
		dst.keys = append(dst.keys[:0], r.keys[:r.count]...)
		dst.vals = append(dst.vals[:0], r.vals[:r.count]...)
		dst.count = r.count
		dst.capacity = r.capacity
		dst.slots = append([]uint32(nil), r.slots...)
	}
	ctx.objects.rec(target).readOnly = true
	ctx.internObjs.insertAt(insertAt, hash, target)
	return objectValue(target), nil
}

// internArray canonicalizes an ARRAY value by content.
func (ctx *Context) internArray(v Value, consume bool) (Value, error) {
	idx := v.index()
	r := ctx.arrays.rec(idx)
	if r.readOnly {
		return v, nil
	}
	if !ctx.arrayChildrenFrozen(r) {
		return Value{}, ErrTypeError("intern_value: mutable child", KindArray)
	}
	hash := hashArrayItems(r)
	found, existing, insertAt := ctx.internArrs.find(hash, func(cand uint32) bool {
		return arrayItemsEqual(r, ctx.arrays.rec(cand))
	})
	if found {
		return arrayValue(existing), nil
	}
	var target uint32
	if consume {
		target = idx
	} else {
		target = ctx.arrays.alloc(r.capacity)
		dst := ctx.arrays.rec(target)
		dst.items = append(dst.items[:0], r.items[:r.count]...)
		dst.count = r.count
		dst.capacity = r.capacity
	}
	ctx.arrays.rec(target).readOnly = true
	ctx.internArrs.insertAt(insertAt, hash, target)
	return arrayValue(target), nil
}
