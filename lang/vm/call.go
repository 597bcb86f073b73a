package vm

import "github.com/mna/loxvm/lang/value"

// callValue dispatches a call to whatever callee is: a Closure pushes a new
// call frame, a Native invokes the host function directly. Anything else is
// a runtime error. The argc values above callee on the stack are its arguments.
func (vm *VM) callValue(callee value.Value, argc int) bool {
	if callee.IsObject() {
		switch c := callee.AsObject().(type) {
		case *value.Closure:
			return vm.call(c, argc)
		case *value.Native:
			args := vm.stack[vm.stackTop-argc : vm.stackTop]
			result, err := c.Fn(args)
			if err != nil {
				vm.runtimeError("%s", err.Error())
				return false
			}
			vm.stackTop -= argc + 1
			vm.push(result)
			return true
		}
	}
	vm.runtimeError("Can only call functions and classes.")
	return false
}

// call pushes a new frame for closure, validating arity and the frame-stack
// depth limit.
func (vm *VM) call(closure *value.Closure, argc int) bool {
	if argc != closure.Function.Arity {
		vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argc)
		return false
	}
	if vm.frameCount == MaxFrames {
		vm.runtimeError("Stack overflow.")
		return false
	}

	frame := &vm.frames[vm.frameCount]
	vm.frameCount++
	frame.closure = closure
	frame.ip = 0
	frame.base = vm.stackTop - argc - 1
	return true
}

// captureUpvalue returns an open upvalue over the stack slot at absolute
// index slot, reusing an existing one from the open-upvalues list if the
// same slot is already captured. The list is kept sorted by descending Slot
// so that insertion and lookup can stop at the first entry whose Slot is not
// greater than the target.
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	var prev *value.Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}

	created := vm.heap.NewUpvalue(slot, &vm.stack[slot])
	created.Next = cur
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue capturing a stack slot at or above
// lastSlot, copying each one's value into its own storage before the
// underlying stack slots are reused or popped off.
func (vm *VM) closeUpvalues(lastSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= lastSlot {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.Next
	}
}
