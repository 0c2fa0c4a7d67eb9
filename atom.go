// atom.go: the global string-interning table.
//
// An Atom is a 64-bit handle: the low 32 bits are an index into the
// atom table, the high 32 bits are the string's hash. Two atoms are
// equal iff their bits are equal, and distinct atoms always denote
// distinct string contents.
//
// The table is open-addressed with linear probing and a fixed load
// factor of 0.5: a single backing array sized to a power of two,
// resized by doubling and full rehash. Hashing uses
// github.com/cespare/xxhash/v2.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "github.com/cespare/xxhash/v2"

// Atom is a 64-bit handle to an interned string.
type Atom uint64

func newAtom(index uint32, hash uint32) Atom {
	return Atom(uint64(hash)<<32 | uint64(index))
}

func (a Atom) index() uint32 { return uint32(a) }
func (a Atom) hash() uint32  { return uint32(a >> 32) }

// atomStr is one entry in the atom table's dense pair array.
type atomStr struct {
	hash   uint32
	length uint32 // low 31 bits length, high bit = owned
	data   []byte
}

const ownedBit = uint32(1) << 31

func (s *atomStr) owned() bool   { return s.length&ownedBit != 0 }
func (s *atomStr) strlen() int   { return int(s.length &^ ownedBit) }
func (s *atomStr) bytes() []byte { return s.data[:s.strlen()] }

// atomTable is the open-addressed string intern table.
type atomTable struct {
	entries []atomStr // dense, index 0..count-1
	count   int

	slots []uint32 // 2*cap(entries) home-probed slots; sentinel = ^uint32(0)

	alloc Allocator
}

const atomSentinel = ^uint32(0)

func newAtomTable(initialCap int, alloc Allocator) *atomTable {
	if initialCap < 8 {
		initialCap = 8
	}
	cap := nextPow2(initialCap)
	t := &atomTable{
		entries: make([]atomStr, 0, cap),
		slots:   make([]uint32, 2*cap),
		alloc:   alloc,
	}
	t.resetSlots()
	return t
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (t *atomTable) resetSlots() {
	for i := range t.slots {
		t.slots[i] = atomSentinel
	}
}

func hashBytes(b []byte) uint32 {
	h := uint32(xxhash.Sum64(b))
	if h == 0 {
		// The empty string (and, degenerately, any string that
		// happens to hash to zero) gets a forced nonzero hash so
		// atom bits of zero never denote a live atom.
		h = 0x9e3779b9
	}
	return h
}

// lookup finds an existing atom for b without inserting.
func (t *atomTable) lookup(b []byte) (Atom, bool) {
	h := hashBytes(b)
	mask := uint32(len(t.slots) - 1)
	pos := h & mask
	for {
		slot := t.slots[pos]
		if slot == atomSentinel {
			return 0, false
		}
		e := &t.entries[slot]
		if e.hash == h && e.strlen() == len(b) && bytesEqual(e.bytes(), b) {
			return newAtom(slot, h), true
		}
		pos = (pos + 1) & mask
	}
}

// intern finds or creates the atom for b. When dup is true the bytes
// are duplicated into the table's own storage; otherwise the table
// retains a slice aliasing the caller's buffer and the caller must
// keep it alive (the NoCopyStrings contract).
func (t *atomTable) intern(b []byte, dup bool) Atom {
	if a, ok := t.lookup(b); ok {
		return a
	}
	if len(t.entries) == cap(t.entries) {
		t.grow()
	}
	var data []byte
	if dup {
		data = t.alloc.Alloc(len(b))
		copy(data, b)
	} else {
		data = b
	}
	length := uint32(len(b))
	if dup {
		length |= ownedBit
	}
	idx := uint32(len(t.entries))
	h := hashBytes(b)
	t.entries = append(t.entries, atomStr{hash: h, length: length, data: data})
	t.insertSlot(idx, h)
	t.count++
	return newAtom(idx, h)
}

func (t *atomTable) insertSlot(idx uint32, h uint32) {
	mask := uint32(len(t.slots) - 1)
	pos := h & mask
	for t.slots[pos] != atomSentinel {
		pos = (pos + 1) & mask
	}
	t.slots[pos] = idx
}

func (t *atomTable) grow() {
	newCap := cap(t.entries) * 2
	if newCap == 0 {
		newCap = 8
	}
	t.slots = make([]uint32, 2*newCap)
	t.resetSlots()
	newEntries := make([]atomStr, len(t.entries), newCap)
	copy(newEntries, t.entries)
	t.entries = newEntries
	for i := range t.entries {
		t.insertSlot(uint32(i), t.entries[i].hash)
	}
}

// resolve returns the bytes an atom denotes. The returned slice must
// not be mutated by the caller.
func (t *atomTable) resolve(a Atom) ([]byte, bool) {
	idx := a.index()
	if int(idx) >= len(t.entries) {
		return nil, false
	}
	e := &t.entries[idx]
	if e.hash != a.hash() {
		return nil, false
	}
	return e.bytes(), true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
