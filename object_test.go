// object_test.go: tests for the object arena.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import (
	"math/rand"
	"strconv"
	"testing"
)

func newTestObject(t *testing.T) (*Context, Value) {
	t.Helper()
	ctx := NewContext(DefaultConfig())
	return ctx, ctx.MakeObject()
}

func atomOf(t *testing.T, ctx *Context, s string) Atom {
	t.Helper()
	return ctx.Atomize([]byte(s), true)
}

func TestObjectSetGetPreservesInsertionOrder(t *testing.T) {
	ctx, o := newTestObject(t)
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		if err := ctx.ObjectSetStr(o, k, Int(int64(i))); err != nil {
			t.Fatalf("ObjectSetStr(%q): %v", k, err)
		}
	}
	view, err := ctx.Keys(o)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	for i, want := range keys {
		kv, err := ctx.GetByIndex(view, i)
		if err != nil {
			t.Fatalf("GetByIndex(%d): %v", i, err)
		}
		a, _ := kv.Atom()
		got, _ := ctx.Resolve(a)
		if string(got) != want {
			t.Errorf("key at position %d = %q, want %q", i, got, want)
		}
	}
}

func TestObjectSetOverwriteIsLastWriteWins(t *testing.T) {
	ctx, o := newTestObject(t)
	key := atomOf(t, ctx, "k")
	if err := ctx.ObjectSet(o, key, Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.ObjectSet(o, key, Int(2)); err != nil {
		t.Fatal(err)
	}
	if ctx.Len(o) != 1 {
		t.Fatalf("Len() = %d, want 1 (overwrite must not grow the pair count)", ctx.Len(o))
	}
	v, err := ctx.ObjectGet(o, key)
	if err != nil {
		t.Fatal(err)
	}
	i, _ := v.AsInt()
	if i != 2 {
		t.Errorf("value after overwrite = %d, want 2", i)
	}
}

func TestObjectDeletePreservesOrderOfSurvivors(t *testing.T) {
	ctx, o := newTestObject(t)
	keys := []string{"a", "b", "c", "d"}
	for i, k := range keys {
		ctx.ObjectSetStr(o, k, Int(int64(i)))
	}
	removed, ok, err := ctx.ObjectDelete(o, atomOf(t, ctx, "b"))
	if err != nil || !ok {
		t.Fatalf("ObjectDelete: ok=%v err=%v", ok, err)
	}
	if i, _ := removed.AsInt(); i != 1 {
		t.Errorf("removed value = %d, want 1", i)
	}

	want := []string{"a", "c", "d"}
	view, _ := ctx.Keys(o)
	if ctx.Len(view) != len(want) {
		t.Fatalf("Len() after delete = %d, want %d", ctx.Len(view), len(want))
	}
	for i, w := range want {
		kv, _ := ctx.GetByIndex(view, i)
		a, _ := kv.Atom()
		got, _ := ctx.Resolve(a)
		if string(got) != w {
			t.Errorf("key at position %d = %q, want %q", i, got, w)
		}
	}

	// Every surviving key must still be directly findable by its own
	// probe path after backward-shift repair.
	for _, w := range want {
		if _, err := ctx.ObjectGet(o, atomOf(t, ctx, w)); err != nil {
			t.Errorf("ObjectGet(%q) after delete: %v", w, err)
		}
	}
}

func TestObjectDeleteThenReinsertFindable(t *testing.T) {
	ctx, o := newTestObject(t)
	for i := 0; i < 40; i++ {
		ctx.ObjectSetStr(o, string(rune('A'+i)), Int(int64(i)))
	}
	for i := 0; i < 40; i += 2 {
		if _, _, err := ctx.ObjectDelete(o, atomOf(t, ctx, string(rune('A'+i)))); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	for i := 1; i < 40; i += 2 {
		if _, err := ctx.ObjectGet(o, atomOf(t, ctx, string(rune('A'+i)))); err != nil {
			t.Errorf("survivor %d not findable: %v", i, err)
		}
	}
	if err := ctx.ObjectSetStr(o, "fresh", Int(99)); err != nil {
		t.Fatalf("insert after mass delete: %v", err)
	}
}

func TestObjectGrowBeyondInitialCapacity(t *testing.T) {
	ctx, o := newTestObject(t)
	const n = 100
	for i := 0; i < n; i++ {
		k := string(rune('a')) + string(rune(i))
		if err := ctx.ObjectSetStr(o, k, Int(int64(i))); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}
	if ctx.Len(o) != n {
		t.Fatalf("Len() = %d, want %d", ctx.Len(o), n)
	}
}

func TestObjectInsertAtSpecificPosition(t *testing.T) {
	ctx, o := newTestObject(t)
	ctx.ObjectSetStr(o, "a", Int(0))
	ctx.ObjectSetStr(o, "c", Int(2))
	if err := ctx.ObjectInsertAt(o, atomOf(t, ctx, "b"), Int(1), 1); err != nil {
		t.Fatalf("ObjectInsertAt: %v", err)
	}
	view, _ := ctx.Keys(o)
	want := []string{"a", "b", "c"}
	for i, w := range want {
		kv, _ := ctx.GetByIndex(view, i)
		a, _ := kv.Atom()
		got, _ := ctx.Resolve(a)
		if string(got) != w {
			t.Errorf("position %d = %q, want %q", i, got, w)
		}
	}
}

func TestObjectReplaceKeyRenamesInPlace(t *testing.T) {
	ctx, o := newTestObject(t)
	ctx.ObjectSetStr(o, "old", Int(1))
	if err := ctx.ObjectReplaceKey(o, atomOf(t, ctx, "old"), atomOf(t, ctx, "new")); err != nil {
		t.Fatalf("ObjectReplaceKey: %v", err)
	}
	if _, err := ctx.ObjectGet(o, atomOf(t, ctx, "old")); err == nil {
		t.Error("old key should no longer resolve")
	}
	v, err := ctx.ObjectGet(o, atomOf(t, ctx, "new"))
	if err != nil {
		t.Fatalf("ObjectGet(new): %v", err)
	}
	if i, _ := v.AsInt(); i != 1 {
		t.Errorf("value after rename = %d, want 1", i)
	}
}

func TestObjectClearEmptiesInPlace(t *testing.T) {
	ctx, o := newTestObject(t)
	ctx.ObjectSetStr(o, "a", Int(1))
	ctx.ObjectSetStr(o, "b", Int(2))
	if err := ctx.ObjectClear(o); err != nil {
		t.Fatalf("ObjectClear: %v", err)
	}
	if ctx.Len(o) != 0 {
		t.Errorf("Len() after clear = %d, want 0", ctx.Len(o))
	}
	if err := ctx.ObjectSetStr(o, "c", Int(3)); err != nil {
		t.Errorf("set after clear should succeed: %v", err)
	}
}

func TestObjectGetOrCreate(t *testing.T) {
	ctx, o := newTestObject(t)
	v, err := ctx.ObjectGetOrCreate(o, atomOf(t, ctx, "missing"), Int(7))
	if err != nil {
		t.Fatalf("ObjectGetOrCreate: %v", err)
	}
	if i, _ := v.AsInt(); i != 7 {
		t.Errorf("default value = %d, want 7", i)
	}
	again, err := ctx.ObjectGetOrCreate(o, atomOf(t, ctx, "missing"), Int(99))
	if err != nil {
		t.Fatal(err)
	}
	if i, _ := again.AsInt(); i != 7 {
		t.Errorf("second call should return the already-set value 7, got %d", i)
	}
}

func TestObjectRandomizedDeleteKeepsProbeChainsIntact(t *testing.T) {
	ctx, o := newTestObject(t)
	rng := rand.New(rand.NewSource(1))

	live := map[string]int64{}
	var order []string

	key := func(n int) string { return "k" + strconv.Itoa(n) }

	for step := 0; step < 2000; step++ {
		if rng.Intn(3) != 0 || len(order) == 0 {
			n := rng.Intn(300)
			k := key(n)
			v := int64(step)
			if err := ctx.ObjectSetStr(o, k, Int(v)); err != nil {
				t.Fatalf("step %d: set %q: %v", step, k, err)
			}
			if _, existed := live[k]; !existed {
				order = append(order, k)
			}
			live[k] = v
		} else {
			i := rng.Intn(len(order))
			k := order[i]
			if _, ok, err := ctx.ObjectDelete(o, atomOf(t, ctx, k)); err != nil || !ok {
				t.Fatalf("step %d: delete %q: ok=%v err=%v", step, k, ok, err)
			}
			delete(live, k)
			order = append(order[:i], order[i+1:]...)
		}
	}

	// Every surviving key must be findable by its natural probe path,
	// with its latest value, and iteration must follow insertion order.
	if ctx.Len(o) != len(order) {
		t.Fatalf("Len() = %d, want %d", ctx.Len(o), len(order))
	}
	for _, k := range order {
		v, err := ctx.ObjectGet(o, atomOf(t, ctx, k))
		if err != nil {
			t.Fatalf("survivor %q not findable: %v", k, err)
		}
		if got, _ := v.AsInt(); got != live[k] {
			t.Errorf("survivor %q = %d, want %d", k, got, live[k])
		}
	}
	view, _ := ctx.Keys(o)
	for i, k := range order {
		kv, _ := ctx.GetByIndex(view, i)
		a, _ := kv.Atom()
		got, _ := ctx.Resolve(a)
		if string(got) != k {
			t.Fatalf("iteration position %d = %q, want %q", i, got, k)
		}
	}
}

func TestObjectMissingKeyIsError(t *testing.T) {
	ctx, o := newTestObject(t)
	_, err := ctx.ObjectGet(o, atomOf(t, ctx, "nope"))
	if !IsMissingKey(err) {
		t.Errorf("expected a MissingKey error, got %v", err)
	}
}
