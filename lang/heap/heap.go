// Package heap implements the managed heap: a single allocation routine that
// tracks every heap object in one intrusive list, a mark-and-sweep collector
// that runs at allocation points, and the string interning table. It is the
// "Heap / GC" component: every Object the compiler or VM creates is born
// here, and lives until the collector decides it is unreachable.
package heap

import (
	"github.com/dolthub/swiss"
	"github.com/mna/loxvm/lang/value"
)

// GrowFactor is applied to bytes_allocated after each sweep to compute the
// next collection threshold.
const GrowFactor = 2

// initialNextGC is the first collection threshold, matching clox's 1 MiB
// default before the first grow.
const initialNextGC = 1024 * 1024

// RootMarker is implemented by the VM to contribute GC roots; functions being
// compiled are rooted separately through PushCompilerRoot. MarkRoots must call mark on every Object reachable
// directly from the root set; the heap takes care of tracing from there.
type RootMarker interface {
	MarkRoots(mark func(value.Object))
}

// Heap owns every heap-allocated object for the lifetime of one VM.
type Heap struct {
	head value.Object // head of the intrusive list threading every live object

	bytesAllocated int64
	nextGC         int64

	strings *swiss.Map[string, *value.String]

	gray []value.Object // gray-stack worklist for the mark phase

	roots         RootMarker
	compilerRoots []*value.Function // functions currently being compiled, outermost first
	pinned        []value.Object    // objects anchored against collection mid-allocation

	// StressGC, when true, forces a collection on every allocation. Intended
	// for tests that want to flush out GC bugs without waiting for the
	// threshold to be crossed naturally.
	StressGC bool

	// Collections counts how many times Collect has run; exposed for tests
	// and diagnostics only.
	Collections int
}

// New returns an empty heap ready to allocate into.
func New() *Heap {
	return &Heap{
		strings: swiss.NewMap[string, *value.String](uint32(64)),
		nextGC:  initialNextGC,
	}
}

// Attach installs the root marker (almost always the VM) that Collect
// consults for the stack/frame/globals/open-upvalue roots.
func (h *Heap) Attach(r RootMarker) { h.roots = r }

// BytesAllocated returns the heap's current bookkeeping total, approximately
// the sum of live object sizes.
func (h *Heap) BytesAllocated() int64 { return h.bytesAllocated }

// PushCompilerRoot registers fn (a function currently being compiled) as a
// GC root. The compiler must call this before it can allocate anything that
// might trigger a collection while fn is still being built, and PopCompilerRoot
// once fn's chunk is complete.
func (h *Heap) PushCompilerRoot(fn *value.Function) {
	h.compilerRoots = append(h.compilerRoots, fn)
}

// PopCompilerRoot removes the most recently pushed compiler root.
func (h *Heap) PopCompilerRoot() {
	h.compilerRoots = h.compilerRoots[:len(h.compilerRoots)-1]
}

// Pin anchors obj as a GC root until the matching Unpin. It exists for the
// narrow window between allocating an object and handing it to a caller that
// can root it some other way (a chunk constant, the VM stack, a compiler
// root): obj is on no root path yet, but track() may already trigger a
// collection, so it would otherwise be swept (and, for a String, dropped
// from the intern table) before anyone ever sees it.
func (h *Heap) Pin(obj value.Object) {
	h.pinned = append(h.pinned, obj)
}

// Unpin releases the most recently pinned object.
func (h *Heap) Unpin() {
	h.pinned = h.pinned[:len(h.pinned)-1]
}

// track prepends obj to the heap's intrusive object list, charges its
// estimated size against bytes_allocated, and triggers a collection if that
// pushes the heap over its threshold (or StressGC is set).
func (h *Heap) track(obj value.Object, size int) {
	hdr := value.Header(obj)
	hdr.Next = h.head
	h.head = obj
	h.bytesAllocated += int64(size)

	if h.StressGC || h.bytesAllocated > h.nextGC {
		h.Collect()
	}
}

// NewFunction allocates an empty function prototype.
func (h *Heap) NewFunction() *value.Function {
	fn := value.NewFunction()
	// fn is reachable from nowhere yet; track() may itself collect, so anchor
	// it across that call. The caller is expected to give fn a durable root
	// (e.g. PushCompilerRoot) before doing anything else that can allocate.
	h.Pin(fn)
	h.track(fn, 96)
	h.Unpin()
	return fn
}

// NewNative allocates a native function wrapper bound to name.
func (h *Heap) NewNative(name string, fn value.NativeFn) *value.Native {
	n := value.NewNative(name, fn)
	h.Pin(n)
	h.track(n, 48)
	h.Unpin()
	return n
}

// NewClosure allocates a closure over fn with empty upvalue slots, ready for
// the VM to populate via OP_CLOSURE.
func (h *Heap) NewClosure(fn *value.Function) *value.Closure {
	c := value.NewClosure(fn)
	h.Pin(c)
	h.track(c, 32+8*len(c.Upvalues))
	h.Unpin()
	return c
}

// NewUpvalue allocates an open upvalue over the live stack slot at index
// slotIndex, pointed to by location.
func (h *Heap) NewUpvalue(slotIndex int, location *value.Value) *value.Upvalue {
	u := value.NewUpvalue(slotIndex, location)
	h.Pin(u)
	h.track(u, 40)
	h.Unpin()
	return u
}
