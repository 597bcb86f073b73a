package heap

import (
	"github.com/dolthub/swiss"
	"github.com/mna/loxvm/lang/value"
)

// Table is the shared implementation behind the globals table: a hash map
// keyed by interned String identity. Because keys are always the product of
// InternString, pointer-identity keying is equivalent to content equality,
// so Table delegates directly to a swiss-table map rather than hand-rolling
// linear probing with tombstones.
type Table struct {
	m *swiss.Map[*value.String, value.Value]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{m: swiss.NewMap[*value.String, value.Value](uint32(8))}
}

// Get looks up name, reporting whether it is bound.
func (t *Table) Get(name *value.String) (value.Value, bool) {
	return t.m.Get(name)
}

// Set binds name to v, overwriting any previous binding. It reports whether
// this created a new binding (true) or overwrote an existing one (false),
// mirroring the distinction OP_DEFINE_GLOBAL and OP_SET_GLOBAL need.
func (t *Table) Set(name *value.String, v value.Value) (isNew bool) {
	_, existed := t.m.Get(name)
	t.m.Put(name, v)
	return !existed
}

// Delete removes name's binding, if any, reporting whether it was present.
func (t *Table) Delete(name *value.String) bool {
	return t.m.Delete(name)
}

// Count returns the number of bindings currently in the table.
func (t *Table) Count() int { return t.m.Count() }

// Each calls fn for every (name, value) binding in the table; used by the
// GC to mark every global's key and value as roots.
func (t *Table) Each(fn func(name *value.String, v value.Value)) {
	t.m.Iter(func(k *value.String, v value.Value) bool {
		fn(k, v)
		return false
	})
}
