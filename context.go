// context.go: the Context ties together the atom table, the object
// and array arenas, and the optional structural-intern indices. It is
// the unit of "destroy everything in one pass" and the unit of
// isolation: handles from one Context are meaningless against another
// (atom indices and arena indices differ per instance).
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

// Context owns every arena, the atom table, and the structural-intern
// indices for one document-store instance. It is not safe for
// concurrent use: all operations are synchronous and run in the
// caller's goroutine.
type Context struct {
	cfg Config

	atoms   *atomTable
	objects *objectArena
	arrays  *arrayArena

	internObjs *internTable
	internArrs *internTable

	gcRuns        uint64
	lastGCAtNano  int64
	lastGCDurNano int64
}

// NewContext creates a Context. A zero Config is valid; missing fields
// are normalized by Config.Validate.
func NewContext(cfg Config) *Context {
	_ = cfg.Validate()
	return &Context{
		cfg:        cfg,
		atoms:      newAtomTable(cfg.AtomTableCapacity, cfg.Allocator),
		objects:    newObjectArena(cfg.ObjectArenaInitLen),
		arrays:     newArrayArena(cfg.ArrayArenaInitLen),
		internObjs: newInternTable(),
		internArrs: newInternTable(),
	}
}

// Close releases every arena and the atom table, including owned
// atom-string bytes, in one pass. The allocator's FreeAll fast path
// is used when available.
func (ctx *Context) Close() {
	if ok := ctx.cfg.Allocator.FreeAll(); !ok {
		// No FreeAll fast path: drop references so the host GC can
		// reclaim everything reachable only from this Context.
		ctx.atoms = nil
		ctx.objects = nil
		ctx.arrays = nil
		ctx.internObjs = nil
		ctx.internArrs = nil
	}
}

// Stats reports coarse counters about the Context's arenas.
func (ctx *Context) Stats() Stats {
	s := Stats{
		AtomCount:       len(ctx.atoms.entries),
		InternedObjects: ctx.internObjs.count,
		InternedArrays:  ctx.internArrs.count,
		GCRuns:          ctx.gcRuns,
		LastGCAtNano:    ctx.lastGCAtNano,
		LastGCDurNano:   ctx.lastGCDurNano,
	}
	for i := 1; i < len(ctx.objects.records); i++ {
		if ctx.objects.records[i].inUse {
			s.ObjectsLive++
		} else {
			s.ObjectsFree++
		}
	}
	for i := 1; i < len(ctx.arrays.records); i++ {
		if ctx.arrays.records[i].inUse {
			s.ArraysLive++
		} else {
			s.ArraysFree++
		}
	}
	return s
}

// ---- Atoms ----

// Atomize interns bytes and returns its Atom, duplicating the bytes
// when dup is true.
func (ctx *Context) Atomize(b []byte, dup bool) Atom {
	return ctx.atoms.intern(b, dup)
}

// LookupAtom finds an existing atom for b without interning it.
func (ctx *Context) LookupAtom(b []byte) (Atom, bool) {
	return ctx.atoms.lookup(b)
}

// Resolve returns the bytes an atom denotes.
func (ctx *Context) Resolve(a Atom) ([]byte, bool) {
	return ctx.atoms.resolve(a)
}

// ---- Value constructors ----

// MakeString interns s and returns a STRING value.
func (ctx *Context) MakeString(s []byte, dup bool) Value {
	return stringValue(ctx.Atomize(s, dup))
}

// MakeObject allocates a fresh, empty, mutable OBJECT value.
func (ctx *Context) MakeObject() Value {
	return objectValue(ctx.objects.alloc(0))
}

// MakeArray allocates a fresh, empty, mutable ARRAY value.
func (ctx *Context) MakeArray() Value {
	return arrayValue(ctx.arrays.alloc(0))
}

// ---- Object operations ----

func requireKind(v Value, want Kind) error {
	if v.Kind() != want {
		return ErrTypeError("require "+want.String(), v.Kind())
	}
	return nil
}

// ObjectGet looks up key (as an Atom) in object o.
func (ctx *Context) ObjectGet(o Value, key Atom) (Value, error) {
	if err := requireKind(o, KindObject); err != nil {
		return Value{}, err
	}
	val, ok := ctx.objects.get(o.index(), key)
	if !ok {
		return Value{}, ErrMissingKey(ctx.keyText(key))
	}
	return val, nil
}

// ObjectGetStr is the bytes-keyed convenience over ObjectGet. A key
// that was never interned cannot be present in any object, so a
// failed LookupAtom short-circuits to MissingKey without allocating.
func (ctx *Context) ObjectGetStr(o Value, key string) (Value, error) {
	a, ok := ctx.LookupAtom([]byte(key))
	if !ok {
		return Value{}, ErrMissingKey(key)
	}
	return ctx.ObjectGet(o, a)
}

// ObjectSet inserts or overwrites key -> val in o, preserving insertion order.
func (ctx *Context) ObjectSet(o Value, key Atom, val Value) error {
	if err := requireKind(o, KindObject); err != nil {
		return err
	}
	return ctx.objects.set(o.index(), key, val)
}

// ObjectSetStr interns key and calls ObjectSet.
func (ctx *Context) ObjectSetStr(o Value, key string, val Value) error {
	if err := requireKind(o, KindObject); err != nil {
		return err
	}
	return ctx.ObjectSet(o, ctx.Atomize([]byte(key), true), val)
}

// ObjectDelete removes key from o, returning its prior value.
func (ctx *Context) ObjectDelete(o Value, key Atom) (Value, bool, error) {
	if err := requireKind(o, KindObject); err != nil {
		return Value{}, false, err
	}
	return ctx.objects.delete(o.index(), key)
}

// ObjectDeleteStr is the bytes-keyed convenience over ObjectDelete.
func (ctx *Context) ObjectDeleteStr(o Value, key string) (Value, bool, error) {
	a, ok := ctx.LookupAtom([]byte(key))
	if !ok {
		return Value{}, false, nil
	}
	return ctx.ObjectDelete(o, a)
}

// ObjectInsertAt inserts key -> val at a specific pair index.
func (ctx *Context) ObjectInsertAt(o Value, key Atom, val Value, index int) error {
	if err := requireKind(o, KindObject); err != nil {
		return err
	}
	return ctx.objects.insertAt(o.index(), key, val, index)
}

// ObjectReplaceKey renames old to new within o without reordering.
func (ctx *Context) ObjectReplaceKey(o Value, old, newKey Atom) error {
	if err := requireKind(o, KindObject); err != nil {
		return err
	}
	if old != newKey {
		if _, ok := ctx.objects.get(o.index(), old); !ok {
			return ErrMissingKey(ctx.keyText(old))
		}
	}
	return ctx.objects.replaceKey(o.index(), old, newKey)
}

// ObjectClear empties o in place.
func (ctx *Context) ObjectClear(o Value) error {
	if err := requireKind(o, KindObject); err != nil {
		return err
	}
	return ctx.objects.clear(o.index())
}

// ObjectGetOrCreate fetches key from o, or sets it to dflt and returns
// dflt if absent.
func (ctx *Context) ObjectGetOrCreate(o Value, key Atom, dflt Value) (Value, error) {
	if v, err := ctx.ObjectGet(o, key); err == nil {
		return v, nil
	}
	if err := ctx.ObjectSet(o, key, dflt); err != nil {
		return Value{}, err
	}
	return dflt, nil
}

func (ctx *Context) keyText(a Atom) string {
	if b, ok := ctx.Resolve(a); ok {
		return string(b)
	}
	return "<unknown>"
}

// ---- Array operations ----

// ArrayPush appends v to array a.
func (ctx *Context) ArrayPush(a Value, v Value) error {
	if err := requireKind(a, KindArray); err != nil {
		return err
	}
	return ctx.arrays.push(a.index(), v)
}

// ArrayPop removes and returns the last element of a.
func (ctx *Context) ArrayPop(a Value) (Value, error) {
	if err := requireKind(a, KindArray); err != nil {
		return Value{}, err
	}
	return ctx.arrays.pop(a.index())
}

// ArrayInsert inserts v at index (index==len(a) appends).
func (ctx *Context) ArrayInsert(a Value, index int, v Value) error {
	if err := requireKind(a, KindArray); err != nil {
		return err
	}
	return ctx.arrays.insert(a.index(), index, v)
}

// ArrayDelete removes and returns the element at index.
func (ctx *Context) ArrayDelete(a Value, index int) (Value, error) {
	if err := requireKind(a, KindArray); err != nil {
		return Value{}, err
	}
	return ctx.arrays.delete(a.index(), index)
}

// ArraySet overwrites the element at index (negative indices wrap).
func (ctx *Context) ArraySet(a Value, index int, v Value) error {
	if err := requireKind(a, KindArray); err != nil {
		return err
	}
	return ctx.arrays.set(a.index(), index, v)
}

// ArrayClear empties a in place.
func (ctx *Context) ArrayClear(a Value) error {
	if err := requireKind(a, KindArray); err != nil {
		return err
	}
	return ctx.arrays.clear(a.index())
}

// ---- Views ----

// Keys returns an OBJECT_KEYS view over o's pair array.
func (ctx *Context) Keys(o Value) (Value, error) {
	if err := requireKind(o, KindObject); err != nil {
		return Value{}, err
	}
	return o.withKind(KindObjectKeys), nil
}

// Values returns an OBJECT_VALUES view over o's pair array.
func (ctx *Context) Values(o Value) (Value, error) {
	if err := requireKind(o, KindObject); err != nil {
		return Value{}, err
	}
	return o.withKind(KindObjectValues), nil
}

// Items returns an OBJECT_ITEMS view: length 2*count, even indices are
// keys (wrapped as STRING), odd indices are values.
func (ctx *Context) Items(o Value) (Value, error) {
	if err := requireKind(o, KindObject); err != nil {
		return Value{}, err
	}
	return o.withKind(KindObjectItems), nil
}

// ArrayView returns a read-only, non-owning ARRAY_VIEW over a.
func (ctx *Context) ArrayView(a Value) (Value, error) {
	if err := requireKind(a, KindArray); err != nil {
		return Value{}, err
	}
	return a.withKind(KindArrayView), nil
}

// ---- Common polymorphic operations ----

// Len reports: STRING -> byte length; ARRAY/ARRAY_VIEW -> count;
// OBJECT/OBJECT_KEYS/OBJECT_VALUES -> count; OBJECT_ITEMS -> 2*count;
// anything else -> -1.
func (ctx *Context) Len(v Value) int {
	switch v.Kind() {
	case KindString:
		a, _ := v.Atom()
		b, ok := ctx.Resolve(a)
		if !ok {
			return -1
		}
		return len(b)
	case KindArray, KindArrayView:
		return ctx.arrays.len(v.index())
	case KindObject, KindObjectKeys, KindObjectValues:
		return ctx.objects.rec(v.index()).count
	case KindObjectItems:
		return 2 * ctx.objects.rec(v.index()).count
	default:
		return -1
	}
}

// Cap reports the backing capacity of a container value (the arena
// record's allocated slot count, not its logical length): ARRAY/
// ARRAY_VIEW -> the array record's capacity; OBJECT and its view kinds
// -> the object record's capacity; anything else -> -1. For callers
// pre-sizing a follow-up bulk insert.
func (ctx *Context) Cap(v Value) int {
	switch v.Kind() {
	case KindArray, KindArrayView:
		return ctx.arrays.rec(v.index()).capacity
	case KindObject, KindObjectKeys, KindObjectValues, KindObjectItems:
		return ctx.objects.rec(v.index()).capacity
	default:
		return -1
	}
}

// GetByIndex indexes into arrays, array views, and the object
// projection kinds. Negative indices wrap by length.
func (ctx *Context) GetByIndex(v Value, i int) (Value, error) {
	switch v.Kind() {
	case KindArray, KindArrayView:
		return ctx.arrays.get(v.index(), i)
	case KindObjectKeys:
		r := ctx.objects.rec(v.index())
		idx, ok := resolveIndex(i, r.count)
		if !ok {
			return Value{}, ErrIndexError(i, r.count)
		}
		return stringValue(r.keys[idx]), nil
	case KindObjectValues:
		r := ctx.objects.rec(v.index())
		idx, ok := resolveIndex(i, r.count)
		if !ok {
			return Value{}, ErrIndexError(i, r.count)
		}
		return r.vals[idx], nil
	case KindObjectItems:
		r := ctx.objects.rec(v.index())
		n := 2 * r.count
		idx, ok := resolveIndex(i, n)
		if !ok {
			return Value{}, ErrIndexError(i, n)
		}
		if idx%2 == 0 {
			return stringValue(r.keys[idx/2]), nil
		}
		return r.vals[idx/2], nil
	default:
		return Value{}, ErrTypeError("get_by_index", v.Kind())
	}
}

// InternValue structurally freezes a composite value. See intern.go
// for the algorithm; consume=true freezes the given record in place
// rather than duplicating it.
func (ctx *Context) InternValue(v Value, consume bool) (Value, error) {
	switch v.Kind() {
	case KindObject:
		return ctx.internObject(v, consume)
	case KindArray:
		return ctx.internArray(v, consume)
	default:
		return Value{}, ErrTypeError("intern_value", v.Kind())
	}
}
