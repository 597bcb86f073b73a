package heap

import "github.com/mna/loxvm/lang/value"

// InternString returns the canonical String object for chars, allocating and
// registering a new one only if this exact content has not been seen before.
// This is the sole path by which String objects are created: every string
// constant, concatenation result, and literal flows through here, which is
// what makes reference equality a correct test for string equality
// elsewhere in the runtime.
func (h *Heap) InternString(chars string) *value.String {
	if s, ok := h.strings.Get(chars); ok {
		return s
	}

	s := &value.String{
		Obj:   value.Obj{Kind: value.ObjStringKind},
		Chars: chars,
		Hash:  value.FNV1a([]byte(chars)),
	}
	h.strings.Put(chars, s)
	// s is in the intern table but reachable from no root yet; track() may
	// itself trigger a collection, which would otherwise sweep s (and delete
	// it from the intern table right back out) before it is ever handed to a
	// caller. Pin it across the call so it survives that collection.
	h.Pin(s)
	h.track(s, len(chars)+24)
	h.Unpin()
	return s
}

// Concat interns the concatenation of a and b's contents.
func (h *Heap) Concat(a, b *value.String) *value.String {
	return h.InternString(a.Chars + b.Chars)
}

// InternedCount returns the number of distinct strings currently interned,
// for tests and diagnostics.
func (h *Heap) InternedCount() int {
	return h.strings.Count()
}
