// Package vm implements the stack-based virtual machine: it walks a chained
// call-frame stack, executing the bytecode compiled by lang/compiler,
// manages closures and upvalue boxing/closing, and drives the heap's
// collector.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/loxvm/internal/stdlib"
	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/loxvm/lang/value"
)

// MaxFrames bounds the call-frame stack; exceeding it is a "Stack overflow."
// runtime error.
const MaxFrames = 64

// StackMax is the fixed capacity of the value stack.
const StackMax = MaxFrames * 256

// Result is the outcome of an Interpret call.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

// callFrame is the runtime record of one active function invocation: the
// closure being executed, its instruction pointer, and the base slot in the
// value stack where its locals (slot 0 is the closure itself) begin.
type callFrame struct {
	closure *value.Closure
	ip      int
	base    int
}

// VM is a single-threaded interpreter instance: a value stack, a call-frame
// stack, the managed heap, the globals table and the open-upvalues list. All
// of this state is owned exclusively by one VM for its lifetime.
type VM struct {
	stack    [StackMax]value.Value
	stackTop int

	frames     [MaxFrames]callFrame
	frameCount int

	heap    *heap.Heap
	globals *heap.Table

	openUpvalues *value.Upvalue // head, sorted by descending Slot

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a freshly initialized VM with its natives registered.
func New() *VM {
	vm := &VM{
		heap:    heap.New(),
		globals: heap.NewTable(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	vm.heap.Attach(vm)
	stdlib.Register(vm.heap, vm.globals)
	return vm
}

// Heap exposes the VM's managed heap, e.g. so callers can toggle StressGC in
// tests or inspect BytesAllocated.
func (vm *VM) Heap() *heap.Heap { return vm.heap }

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// MarkRoots implements heap.RootMarker: every value on the stack, the
// closure of every active frame, every open upvalue, and every global name
// and value.
func (vm *VM) MarkRoots(mark func(value.Object)) {
	for i := 0; i < vm.stackTop; i++ {
		if vm.stack[i].IsObject() {
			mark(vm.stack[i].AsObject())
		}
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.Next {
		mark(uv)
	}
	vm.globals.Each(func(name *value.String, v value.Value) {
		mark(name)
		if v.IsObject() {
			mark(v.AsObject())
		}
	})
}

// Interpret compiles and runs source against this VM. Globals defined by a
// previous successful or failed Interpret call remain visible to subsequent
// calls, matching the REPL's persisted-globals contract.
func (vm *VM) Interpret(source string) Result {
	fn, errs, ok := compiler.Compile(source, vm.heap)
	if !ok {
		for _, e := range errs {
			fmt.Fprintln(vm.Stderr, e.Error())
		}
		return ResultCompileError
	}

	closure := vm.heap.NewClosure(fn)
	vm.push(value.FromObject(closure))
	if !vm.call(closure, 0) {
		return ResultRuntimeError
	}

	return vm.run()
}

func (vm *VM) runtimeError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.Stderr, msg)

	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.closure.Function
		line := 0
		if frame.ip-1 >= 0 && frame.ip-1 < len(fn.Chunk.Lines) {
			line = fn.Chunk.Lines[frame.ip-1]
		}
		name := "script"
		if fn.Name != nil {
			name = fn.Name.Chars + "()"
		}
		fmt.Fprintf(vm.Stderr, "[line %d] in %s\n", line, name)
	}

	vm.resetStack()
}
