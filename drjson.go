// Package drjson is an in-memory document store and parser for a
// permissive JSON-superset text format.
//
// The core is a tagged-value representation backed by two
// index-addressed arenas (objects and arrays), a global string-interning
// table (atoms), a recursive-descent tokenizer/parser, a path/query
// evaluator, a mark-and-sweep garbage collector, and an optional
// structural-interning layer that deduplicates read-only composite
// values.
//
// # Handles, not pointers
//
// Values never embed pointers to other values. Composite values hold a
// 32-bit index into an arena; all navigation is arena[index]. This
// keeps a Value 16 bytes, trivially copyable, and free of ownership
// cycles, and lets the garbage collector reclaim unreachable records
// without rewriting a pointer graph.
//
// # Quick start
//
//	ctx := drjson.NewContext(drjson.DefaultConfig())
//	defer ctx.Close()
//
//	doc, err := ctx.Parse([]byte(`{name: "ada", tags: [1, 2, 3]}`), 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name, _ := ctx.Query(doc, ".name")
//
// # Concurrency
//
// A Context and every Value derived from it are not safe for concurrent
// use. All operations are synchronous; none suspend or yield. Multiple
// contexts may coexist in a process, but handles from one context are
// meaningless against another.
package drjson

const (
	// Version identifies this module for diagnostics and error context.
	Version = "v0.1.0-dev"

	// MaxDepth is the default maximum nesting depth the parser will
	// follow before returning ErrTooDeep (see Config.MaxDepth).
	MaxDepth = 100

	// MaxArenaLen is the largest logical object/array size enforced by
	// growth checks.
	MaxArenaLen = 0x1FFFFFFF

	// nullHandle is the reserved arena index that never gets handed out;
	// the GC mark phase treats it as "no record".
	nullHandle = 0
)
