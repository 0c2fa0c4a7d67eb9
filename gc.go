// gc.go: mark-and-sweep collection over the object and array arenas.
//
// The mark bit lives directly on the arena record (no auxiliary
// bitmap); dead slots are threaded back onto the arena's free list.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

// GC runs mark-and-sweep over ctx's object and array arenas, treating
// roots as the live set's entry points. Every arena slot
// not reachable from a root and not already on the free list is
// freed; reachable slots have their mark bit cleared for the next run.
func (ctx *Context) GC(roots ...Value) {
	start := ctx.cfg.clock.nowNano()

	for _, r := range roots {
		ctx.mark(r)
	}

	objectsFreed := ctx.sweepObjects()
	arraysFreed := ctx.sweepArrays()

	ctx.gcRuns++
	ctx.lastGCAtNano = start
	ctx.lastGCDurNano = ctx.cfg.clock.nowNano() - start

	ctx.cfg.Logger.Debug("gc sweep complete",
		"roots", len(roots),
		"objects_freed", objectsFreed,
		"arrays_freed", arraysFreed,
		"duration_ns", ctx.lastGCDurNano)
}

func (ctx *Context) mark(v Value) {
	switch v.Kind() {
	case KindObject, KindObjectKeys, KindObjectValues, KindObjectItems:
		ctx.markObject(v.index())
	case KindArray, KindArrayView:
		ctx.markArray(v.index())
	default:
		// scalars and ERROR terminate a branch; nothing to mark.
	}
}

func (ctx *Context) markObject(idx uint32) {
	if idx == nullHandle || idx >= uint32(len(ctx.objects.records)) {
		return
	}
	r := &ctx.objects.records[idx]
	if !r.inUse || r.marked {
		return
	}
	r.marked = true
	for i := 0; i < r.count; i++ {
		ctx.mark(r.vals[i])
	}
}

func (ctx *Context) markArray(idx uint32) {
	if idx == nullHandle || idx >= uint32(len(ctx.arrays.records)) {
		return
	}
	r := &ctx.arrays.records[idx]
	if !r.inUse || r.marked {
		return
	}
	r.marked = true
	for i := 0; i < r.count; i++ {
		ctx.mark(r.items[i])
	}
}

func (ctx *Context) sweepObjects() (freed int) {
	for i := 1; i < len(ctx.objects.records); i++ {
		r := &ctx.objects.records[i]
		if !r.inUse {
			continue
		}
		if r.marked {
			r.marked = false
			continue
		}
		if r.readOnly {
			ctx.internObjs.remove(uint32(i))
		}
		r.keys = nil
		r.vals = nil
		r.slots = nil
		r.count = 0
		r.capacity = 0
		r.readOnly = false
		r.inUse = false
		ctx.objects.free = append(ctx.objects.free, uint32(i))
		freed++
	}
	return freed
}

func (ctx *Context) sweepArrays() (freed int) {
	for i := 1; i < len(ctx.arrays.records); i++ {
		r := &ctx.arrays.records[i]
		if !r.inUse {
			continue
		}
		if r.marked {
			r.marked = false
			continue
		}
		if r.readOnly {
			ctx.internArrs.remove(uint32(i))
		}
		r.items = nil
		r.count = 0
		r.capacity = 0
		r.readOnly = false
		r.inUse = false
		ctx.arrays.free = append(ctx.arrays.free, uint32(i))
		freed++
	}
	return freed
}
