// equal.go: structural (deep) equality between values, as distinct
// from Value.Equal's handle/bit identity. Two freshly parsed documents
// with the same logical content but different arena handles are
// DeepEqual but not Equal; two structurally-interned values that
// canonicalized to the same handle are both.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

// DeepEqual reports whether a and b have the same kind tree, the same
// object keys in the same order, and the same scalars. This is the
// notion of equivalence under which parse(print(v)) gives back v.
func (ctx *Context) DeepEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		av, _ := a.AsBool()
		bv, _ := b.AsBool()
		return av == bv
	case KindInteger:
		av, _ := a.AsInt()
		bv, _ := b.AsInt()
		return av == bv
	case KindUInteger:
		av, _ := a.AsUint()
		bv, _ := b.AsUint()
		return av == bv
	case KindNumber:
		av, _ := a.AsNumber()
		bv, _ := b.AsNumber()
		return av == bv
	case KindString:
		aa, _ := a.Atom()
		ba, _ := b.Atom()
		ab, _ := ctx.Resolve(aa)
		bb, _ := ctx.Resolve(ba)
		return bytesEqual(ab, bb)
	case KindError:
		return a.ErrorCode() == b.ErrorCode()
	case KindObject:
		ra, rb := ctx.objects.rec(a.index()), ctx.objects.rec(b.index())
		if ra.count != rb.count {
			return false
		}
		for i := 0; i < ra.count; i++ {
			if ra.keys[i] != rb.keys[i] {
				return false
			}
			if !ctx.DeepEqual(ra.vals[i], rb.vals[i]) {
				return false
			}
		}
		return true
	case KindArray:
		ra, rb := ctx.arrays.rec(a.index()), ctx.arrays.rec(b.index())
		if ra.count != rb.count {
			return false
		}
		for i := 0; i < ra.count; i++ {
			if !ctx.DeepEqual(ra.items[i], rb.items[i]) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}
