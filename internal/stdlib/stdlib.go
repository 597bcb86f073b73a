// Package stdlib binds the small set of native functions available to every
// script without an import statement. It depends only on lang/heap and
// lang/value, never on lang/vm, so the VM can register these natives into
// its globals table without an import cycle.
package stdlib

import (
	"time"

	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/loxvm/lang/value"
)

// Register defines every native function in globals, allocating each one
// through h so it participates in GC bookkeeping like any other object.
func Register(h *heap.Heap, globals *heap.Table) {
	define(h, globals, "clock", clock)
}

func define(h *heap.Heap, globals *heap.Table, name string, fn value.NativeFn) {
	// Intern the key before allocating n: once n exists it is rooted by
	// nothing until globals.Set runs, so nothing between its creation and
	// that call may itself allocate (and thus possibly collect).
	key := h.InternString(name)
	n := h.NewNative(name, fn)
	globals.Set(key, value.FromObject(n))
}

// clock exposes wall-clock time in fractional seconds, the same signature
// as the reference implementation's clock(). No pack library wraps
// monotonic/wall time more idiomatically than the standard library's time
// package, so this native is grounded directly on it.
func clock(args []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}
