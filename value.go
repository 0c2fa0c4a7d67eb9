// value.go: the 16-byte tagged-union Value representation.
//
// A Value never embeds a pointer to another Value. Composite kinds
// (ARRAY, OBJECT, and the view kinds) carry a 32-bit index into the
// owning Context's array or object arena; scalar kinds pack their
// payload directly into a 64-bit word. Index (not pointer) addressing
// lets records be relocated or freed by GC without rewriting a
// pointer graph, and packing the payload into fixed-width words keeps
// Value trivially copyable with no interface{} boxing.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "math"

// Kind discriminates the payload carried by a Value.
type Kind uint8

const (
	KindError Kind = iota
	KindNumber
	KindInteger
	KindUInteger
	KindString
	KindArray
	KindObject
	KindNull
	KindBool
	KindArrayView
	KindObjectKeys
	KindObjectValues
	KindObjectItems
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "ERROR"
	case KindNumber:
		return "NUMBER"
	case KindInteger:
		return "INTEGER"
	case KindUInteger:
		return "UINTEGER"
	case KindString:
		return "STRING"
	case KindArray:
		return "ARRAY"
	case KindObject:
		return "OBJECT"
	case KindNull:
		return "NULL"
	case KindBool:
		return "BOOL"
	case KindArrayView:
		return "ARRAY_VIEW"
	case KindObjectKeys:
		return "OBJECT_KEYS"
	case KindObjectValues:
		return "OBJECT_VALUES"
	case KindObjectItems:
		return "OBJECT_ITEMS"
	default:
		return "UNKNOWN"
	}
}

// IsContainer reports whether k is one of the array-like or
// object-like container kinds that dispatch through Context.Len /
// Context.GetByIndex (no shared supertype: dispatch on kind instead).
func (k Kind) IsContainer() bool {
	switch k {
	case KindArray, KindObject, KindArrayView, KindObjectKeys, KindObjectValues, KindObjectItems:
		return true
	default:
		return false
	}
}

// IsArrayLike reports whether k iterates like an array (ARRAY,
// ARRAY_VIEW, or one of the OBJECT_* views).
func (k Kind) IsArrayLike() bool {
	switch k {
	case KindArray, KindArrayView, KindObjectKeys, KindObjectValues, KindObjectItems:
		return true
	default:
		return false
	}
}

// Value is the 16-byte tagged value every DrJson operation produces
// and consumes: a kind byte plus a 64-bit payload word, reinterpreted
// according to kind.
type Value struct {
	kind Kind
	bits uint64
}

// Kind returns v's discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsError reports whether v is an ERROR value.
func (v Value) IsError() bool { return v.kind == KindError }

// ErrorCode returns the numeric error code carried by an ERROR value,
// or CodeNone if v is not an ERROR value.
func (v Value) ErrorCode() Code {
	if v.kind != KindError {
		return CodeNone
	}
	return Code(v.bits)
}

// ErrorMessage returns the static message for an ERROR value's code.
func (v Value) ErrorMessage() string {
	if v.kind != KindError {
		return ""
	}
	return errCodeMessage(Code(v.bits))
}

// errorValue constructs an ERROR value carrying code.
func errorValue(code Code) Value {
	return Value{kind: KindError, bits: uint64(code)}
}

// Null returns the NULL value.
func Null() Value { return Value{kind: KindNull} }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns a BOOL value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, bits: 1}
	}
	return Value{kind: KindBool}
}

// AsBool returns v's boolean payload and whether v is a BOOL value.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.bits != 0, true
}

// Int returns an INTEGER value.
func Int(i int64) Value { return Value{kind: KindInteger, bits: uint64(i)} }

// AsInt returns v's int64 payload and whether v is an INTEGER value.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return int64(v.bits), true
}

// Uint returns a UINTEGER value.
func Uint(u uint64) Value { return Value{kind: KindUInteger, bits: u} }

// AsUint returns v's uint64 payload and whether v is a UINTEGER value.
func (v Value) AsUint() (uint64, bool) {
	if v.kind != KindUInteger {
		return 0, false
	}
	return v.bits, true
}

// Number returns a NUMBER (double) value.
func Number(f float64) Value { return Value{kind: KindNumber, bits: math.Float64bits(f)} }

// AsNumber returns v's float64 payload and whether v is a NUMBER value.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

// AsFloat64 widens any numeric kind (NUMBER, INTEGER, UINTEGER) to a
// float64, for callers that don't care about the exact representation.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return math.Float64frombits(v.bits), true
	case KindInteger:
		return float64(int64(v.bits)), true
	case KindUInteger:
		return float64(v.bits), true
	default:
		return 0, false
	}
}

// stringValue wraps an atom as a STRING value.
func stringValue(a Atom) Value { return Value{kind: KindString, bits: uint64(a)} }

// Atom returns the Atom backing a STRING value, or (0, false) otherwise.
func (v Value) Atom() (Atom, bool) {
	if v.kind != KindString {
		return 0, false
	}
	return Atom(v.bits), true
}

// arrayValue wraps an array-arena index as an ARRAY value.
func arrayValue(idx uint32) Value { return Value{kind: KindArray, bits: uint64(idx)} }

// objectValue wraps an object-arena index as an OBJECT value.
func objectValue(idx uint32) Value { return Value{kind: KindObject, bits: uint64(idx)} }

// index returns the arena index payload shared by every composite and
// view kind.
func (v Value) index() uint32 { return uint32(v.bits) }

// withKind returns a copy of v reinterpreted as kind k, sharing v's
// index payload. Used to build the *_VIEW / OBJECT_* projections
// without allocating: they borrow the base container's storage.
func (v Value) withKind(k Kind) Value { return Value{kind: k, bits: v.bits} }

// Equal reports whether two values are bit-for-bit identical: same
// kind and same payload. For STRING values this is equivalent to
// content equality, since distinct atoms always denote distinct
// contents; for ARRAY/OBJECT it is handle identity, not structural
// equality (use Context.DeepEqual for that). Two interned composites
// compare Equal iff their content was equal at intern time.
func (v Value) Equal(o Value) bool { return v.kind == o.kind && v.bits == o.bits }
