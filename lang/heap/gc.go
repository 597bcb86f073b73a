package heap

import "github.com/mna/loxvm/lang/value"

// MarkValue marks v's object (if it holds one); nil, bool and number values
// carry no heap references and are no-ops.
func (h *Heap) MarkValue(v value.Value) {
	if v.IsObject() {
		h.markObject(v.AsObject())
	}
}

// markObject pushes obj onto the gray-stack worklist the first time it is
// seen. Marking is idempotent: an already-marked object (including one
// reached through a cycle) is skipped.
func (h *Heap) markObject(obj value.Object) {
	if obj == nil {
		return
	}
	hdr := value.Header(obj)
	if hdr.Marked {
		return
	}
	hdr.Marked = true
	h.gray = append(h.gray, obj)
}

// blacken marks every Object directly reachable from obj, per kind:
//   - String, Native: no children.
//   - Function: its name (if any) and every constant in its chunk.
//   - Closure: its Function and every captured Upvalue.
//   - Upvalue: its Closed slot (harmless to mark even while open, since an
//     open upvalue's Closed field is the zero Value, which carries no
//     object).
func (h *Heap) blacken(obj value.Object) {
	switch o := obj.(type) {
	case *value.String, *value.Native:
		// no children
	case *value.Function:
		if o.Name != nil {
			h.markObject(o.Name)
		}
		for _, c := range o.Chunk.Constants {
			h.MarkValue(c)
		}
	case *value.Closure:
		h.markObject(o.Function)
		for _, uv := range o.Upvalues {
			if uv != nil {
				h.markObject(uv)
			}
		}
	case *value.Upvalue:
		h.MarkValue(o.Closed)
	}
}

func (h *Heap) traceReferences() {
	for len(h.gray) > 0 {
		n := len(h.gray) - 1
		obj := h.gray[n]
		h.gray = h.gray[:n]
		h.blacken(obj)
	}
}

// sweep walks the intrusive object list, unlinking and discarding every
// object left unmarked, clearing the mark bit on survivors. Strings removed
// this way are also removed from the intern table at the same time, since it
// holds only weak references to its values.
func (h *Heap) sweep() {
	var prev value.Object
	obj := h.head
	for obj != nil {
		hdr := value.Header(obj)
		next := hdr.Next
		if hdr.Marked {
			hdr.Marked = false
			prev = obj
		} else {
			if prev != nil {
				value.Header(prev).Next = next
			} else {
				h.head = next
			}
			h.free(obj)
		}
		obj = next
	}
}

func (h *Heap) free(obj value.Object) {
	switch o := obj.(type) {
	case *value.String:
		h.strings.Delete(o.Chars)
		h.bytesAllocated -= int64(len(o.Chars) + 24)
	case *value.Function:
		h.bytesAllocated -= 96
	case *value.Native:
		h.bytesAllocated -= 48
	case *value.Closure:
		h.bytesAllocated -= int64(32 + 8*len(o.Upvalues))
	case *value.Upvalue:
		h.bytesAllocated -= 40
	}
}

// Collect runs one full mark-and-sweep cycle: it asks the attached root
// marker to mark its roots, marks every function still being compiled and
// every pinned object, traces the
// gray-stack worklist to a fixed point, sweeps unreachable objects, and
// raises the next collection threshold.
func (h *Heap) Collect() {
	if h.roots != nil {
		h.roots.MarkRoots(h.markObject)
	}
	for _, fn := range h.compilerRoots {
		h.markObject(fn)
	}
	for _, obj := range h.pinned {
		h.markObject(obj)
	}

	h.traceReferences()
	h.sweep()

	h.nextGC = h.bytesAllocated * GrowFactor
	if h.nextGC < initialNextGC {
		h.nextGC = initialNextGC
	}
	h.Collections++
}
