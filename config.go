// config.go: allocator, logging, and sizing configuration for a Context.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "github.com/agilira/go-timecache"

// Default sizing constants, applied by Config.Validate.
const (
	DefaultAtomTableCapacity  = 64
	DefaultObjectArenaInitLen = 16
	DefaultArrayArenaInitLen  = 16
	DefaultMaxDepth           = MaxDepth
)

// Allocator supplies the byte storage for copied atom strings. The
// object and array arenas keep their records in ordinary Go slices and
// do not allocate through it. It mirrors
// a conventional alloc/realloc/free triple rather than Go's GC-managed
// allocation, so that a Context's memory behavior (including the
// optional FreeAll fast path) can be reasoned about independently of
// the host process's garbage collector.
type Allocator interface {
	// Alloc returns a zeroed buffer of size n, or nil on failure.
	Alloc(n int) []byte
	// Realloc grows or shrinks buf to size n, preserving its prefix.
	// buf may be nil (equivalent to Alloc).
	Realloc(buf []byte, n int) []byte
	// Free releases buf. It is a no-op for allocators that rely on
	// FreeAll or host GC instead of manual frees.
	Free(buf []byte)
	// FreeAll releases everything this allocator has ever produced in
	// one step, if supported; ok is false when the allocator has no
	// such fast path and callers must rely on Context.Close instead.
	FreeAll() (ok bool)
}

// goAllocator is the default Allocator: it defers to the Go runtime's
// allocator and garbage collector, and has no FreeAll fast path.
type goAllocator struct{}

func (goAllocator) Alloc(n int) []byte { return make([]byte, n) }

func (goAllocator) Realloc(buf []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, buf)
	return out
}

func (goAllocator) Free([]byte) {}

func (goAllocator) FreeAll() (ok bool) { return false }

// Logger defines a minimal structured-logging interface with zero
// overhead when unused. Never called on a hot path; the only message
// emitted is a Debug-level GC sweep summary.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger discards every message. It is the default Logger.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...interface{}) {}
func (NoOpLogger) Info(string, ...interface{})  {}
func (NoOpLogger) Warn(string, ...interface{})  {}
func (NoOpLogger) Error(string, ...interface{}) {}

// clock abstracts time retrieval so tests can substitute a fixed clock;
// the production default uses go-timecache's cached nanosecond clock,
// which is far cheaper than time.Now() for the coarse "when did GC last
// run" bookkeeping in Stats.
type clock interface {
	nowNano() int64
}

type timecacheClock struct{}

func (timecacheClock) nowNano() int64 { return timecache.CachedTimeNano() }

// Config configures a new Context.
type Config struct {
	// Allocator backs all atom and arena storage. Default: a thin
	// wrapper over the Go runtime allocator.
	Allocator Allocator

	// AtomTableCapacity is the initial capacity of the atom table.
	// Default: DefaultAtomTableCapacity.
	AtomTableCapacity int

	// ObjectArenaInitLen / ArrayArenaInitLen size the initial backing
	// vector of the object/array arenas (slot 0 is always reserved as
	// the null handle). Defaults: DefaultObjectArenaInitLen /
	// DefaultArrayArenaInitLen.
	ObjectArenaInitLen int
	ArrayArenaInitLen  int

	// MaxDepth bounds recursion in the parser. (Paths are bounded
	// separately by MaxPathSegments.) Default: DefaultMaxDepth.
	MaxDepth int

	// Logger receives coarse diagnostic messages. Default: NoOpLogger.
	Logger Logger

	clock clock
}

// Validate normalizes zero-valued fields to their defaults. It never
// returns a non-nil error; the return type is kept for symmetry with
// call sites that check it.
func (c *Config) Validate() error {
	if c.Allocator == nil {
		c.Allocator = goAllocator{}
	}
	if c.AtomTableCapacity <= 0 {
		c.AtomTableCapacity = DefaultAtomTableCapacity
	}
	if c.ObjectArenaInitLen <= 0 {
		c.ObjectArenaInitLen = DefaultObjectArenaInitLen
	}
	if c.ArrayArenaInitLen <= 0 {
		c.ArrayArenaInitLen = DefaultArrayArenaInitLen
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.clock == nil {
		c.clock = timecacheClock{}
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults already applied.
func DefaultConfig() Config {
	c := Config{}
	_ = c.Validate()
	return c
}

// Stats reports coarse counters about a Context's arenas and GC
// activity.
type Stats struct {
	AtomCount int

	ObjectsLive int
	ObjectsFree int
	ArraysLive  int
	ArraysFree  int

	InternedObjects int
	InternedArrays  int

	GCRuns        uint64
	LastGCAtNano  int64
	LastGCDurNano int64
}
