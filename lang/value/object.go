package value

// ObjKind discriminates the kind of a heap Object.
type ObjKind uint8

const (
	ObjStringKind ObjKind = iota
	ObjFunctionKind
	ObjNativeKind
	ObjClosureKind
	ObjUpvalueKind
)

func (k ObjKind) String() string {
	switch k {
	case ObjStringKind:
		return "string"
	case ObjFunctionKind:
		return "function"
	case ObjNativeKind:
		return "native function"
	case ObjClosureKind:
		return "function"
	case ObjUpvalueKind:
		return "upvalue"
	default:
		return "object"
	}
}

// Obj is the common header every heap object extends: a kind tag, the mark
// bit used only during garbage collection, and the intrusive "next" link that
// threads every live object through the heap's single allocation list. Obj is
// embedded by value in every concrete kind, and the Object interface's
// header() method (promoted automatically through the embedding) gives the
// heap uniform access to it regardless of concrete type.
type Obj struct {
	Kind   ObjKind
	Marked bool
	Next   Object
}

func (o *Obj) header() *Obj { return o }

// Object is implemented by every heap-allocated value kind.
type Object interface {
	String() string
	header() *Obj
}

// Header exposes the common Obj header of any Object, for use by the heap's
// allocator and collector.
func Header(o Object) *Obj { return o.header() }
