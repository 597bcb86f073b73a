package value

import "fmt"

// Function is a compiled function prototype: its arity, the number of
// upvalues its closures must allocate, its own Chunk, and an optional name.
// It is created by the compiler and never mutated once compilation of its
// body completes.
type Function struct {
	Obj
	Arity        int
	UpvalueCount int
	Chunk        Chunk
	Name         *String // nil for the implicit top-level script function
}

var _ Object = (*Function)(nil)

func NewFunction() *Function {
	return &Function{Obj: Obj{Kind: ObjFunctionKind}}
}

func (fn *Function) String() string {
	if fn.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", fn.Name.Chars)
}

// NativeFn is the signature of a native (host-implemented) function exposed
// to scripts: it receives its arguments and returns a value or an error.
type NativeFn func(args []Value) (Value, error)

// Native wraps a host function pointer so it can be called like any other
// Lox callable.
type Native struct {
	Obj
	Name string
	Fn   NativeFn
}

var _ Object = (*Native)(nil)

func NewNative(name string, fn NativeFn) *Native {
	return &Native{Obj: Obj{Kind: ObjNativeKind}, Name: name, Fn: fn}
}

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Closure pairs a (possibly shared) Function with the upvalues it captured at
// creation time. A Closure does not own its Function.
type Closure struct {
	Obj
	Function *Function
	Upvalues []*Upvalue
}

var _ Object = (*Closure)(nil)

func NewClosure(fn *Function) *Closure {
	return &Closure{
		Obj:      Obj{Kind: ObjClosureKind},
		Function: fn,
		Upvalues: make([]*Upvalue, fn.UpvalueCount),
	}
}

func (c *Closure) String() string { return c.Function.String() }

// Upvalue is a captured variable slot. It is open while Location points into
// a live stack slot of an enclosing frame, and closed once Location has been
// repointed at the upvalue's own Closed storage. Slot records the stack slot
// index it was captured from; it is only meaningful while the upvalue is
// open, and exists so the VM can keep the open-upvalues list ordered by
// descending stack address without resorting to unsafe pointer arithmetic.
type Upvalue struct {
	Obj
	Slot     int
	Location *Value
	Closed   Value
	Next     *Upvalue // intrusive link in the VM's open-upvalues list, descending by stack address
}

var _ Object = (*Upvalue)(nil)

func NewUpvalue(slot int, location *Value) *Upvalue {
	return &Upvalue{Obj: Obj{Kind: ObjUpvalueKind}, Slot: slot, Location: location}
}

func (u *Upvalue) String() string { return "upvalue" }

// IsOpen reports whether the upvalue still points into a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Location != &u.Closed }

// Close copies the value at the upvalue's current location into its own
// storage and repoints Location there, transitioning it to the closed state.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}
