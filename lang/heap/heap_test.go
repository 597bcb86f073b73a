package heap_test

import (
	"testing"

	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/loxvm/lang/value"
	"github.com/stretchr/testify/require"
)

// fakeRoots lets tests control exactly what the collector considers alive.
type fakeRoots struct {
	objs []value.Object
}

func (f *fakeRoots) MarkRoots(mark func(value.Object)) {
	for _, o := range f.objs {
		mark(o)
	}
}

func TestInternStringIdentity(t *testing.T) {
	h := heap.New()
	a := h.InternString("foo")
	b := h.InternString("foo")
	require.True(t, a == b, "equal-content strings must be the same object")
	require.Equal(t, 1, h.InternedCount())
}

func TestInternStringDistinctContent(t *testing.T) {
	h := heap.New()
	a := h.InternString("foo")
	b := h.InternString("bar")
	require.False(t, a == b)
	require.Equal(t, 2, h.InternedCount())
}

func TestCollectFreesUnreachableStrings(t *testing.T) {
	h := heap.New()
	roots := &fakeRoots{}
	h.Attach(roots)

	kept := h.InternString("kept")
	roots.objs = []value.Object{kept}
	h.InternString("discarded")

	h.Collect()

	require.Equal(t, 1, h.InternedCount())
	_, ok := sameHeapLookup(h, "kept")
	require.True(t, ok)
}

func sameHeapLookup(h *heap.Heap, s string) (*value.String, bool) {
	before := h.InternedCount()
	got := h.InternString(s)
	after := h.InternedCount()
	return got, after == before
}

func TestStressGCCollectsEagerly(t *testing.T) {
	h := heap.New()
	h.StressGC = true
	roots := &fakeRoots{}
	h.Attach(roots)

	for i := 0; i < 50; i++ {
		h.InternString(string(rune('a' + i%26)))
	}
	require.Greater(t, h.Collections, 0)
}

func TestGlobalsTableDefineGetSet(t *testing.T) {
	h := heap.New()
	tbl := heap.NewTable()
	name := h.InternString("x")

	isNew := tbl.Set(name, value.Number(1))
	require.True(t, isNew)

	v, ok := tbl.Get(name)
	require.True(t, ok)
	require.Equal(t, 1.0, v.AsNumber())

	isNew = tbl.Set(name, value.Number(2))
	require.False(t, isNew)
	v, ok = tbl.Get(name)
	require.True(t, ok)
	require.Equal(t, 2.0, v.AsNumber())
}
