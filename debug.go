// debug.go: a development-time structural dump of a Value tree,
// independent of the printer's JSON-shaped output. Useful when
// debugging arena handles and atom identity directly rather than the
// serialized text form.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// DumpValue renders v as an indented tree showing kind, arena handle
// (for composites), atom identity (for strings), and scalar payloads.
// It is meant for interactive debugging, not machine consumption.
func (ctx *Context) DumpValue(v Value) string {
	var b strings.Builder
	ctx.dumpValue(&b, v, 0)
	return b.String()
}

func (ctx *Context) dumpValue(b *strings.Builder, v Value, depth int) {
	pad := strings.Repeat("  ", depth)
	switch v.Kind() {
	case KindObject:
		r := ctx.objects.rec(v.index())
		fmt.Fprintf(b, "%sOBJECT#%d (count=%d cap=%d readOnly=%v)\n", pad, v.index(), r.count, r.capacity, r.readOnly)
		for i := 0; i < r.count; i++ {
			key, _ := ctx.Resolve(r.keys[i])
			fmt.Fprintf(b, "%s  %q:\n", pad, key)
			ctx.dumpValue(b, r.vals[i], depth+2)
		}
	case KindArray, KindArrayView:
		r := ctx.arrays.rec(v.index())
		fmt.Fprintf(b, "%s%s#%d (count=%d cap=%d readOnly=%v)\n", pad, v.Kind(), v.index(), r.count, r.capacity, r.readOnly)
		for i := 0; i < r.count; i++ {
			ctx.dumpValue(b, r.items[i], depth+1)
		}
	case KindString:
		a, _ := v.Atom()
		raw, _ := ctx.Resolve(a)
		fmt.Fprintf(b, "%sSTRING atom(idx=%d hash=%08x) = %q\n", pad, a.index(), a.hash(), raw)
	case KindError:
		fmt.Fprintf(b, "%sERROR %s\n", pad, FormatError(v.ErrorCode(), v.ErrorMessage()))
	case KindNull:
		fmt.Fprintf(b, "%sNULL\n", pad)
	case KindBool:
		bv, _ := v.AsBool()
		fmt.Fprintf(b, "%sBOOL %v\n", pad, bv)
	case KindInteger:
		iv, _ := v.AsInt()
		fmt.Fprintf(b, "%sINTEGER %d\n", pad, iv)
	case KindUInteger:
		uv, _ := v.AsUint()
		fmt.Fprintf(b, "%sUINTEGER %d\n", pad, uv)
	case KindNumber:
		nv, _ := v.AsNumber()
		fmt.Fprintf(b, "%sNUMBER %v\n", pad, nv)
	default:
		// Object view kinds and anything future: fall back to a
		// raw struct dump rather than teaching this function every
		// projection kind by hand.
		fmt.Fprintf(b, "%s%s\n%s", pad, v.Kind(), spew.Sdump(v))
	}
}
