package vm

import "github.com/mna/loxvm/lang/value"

// run executes instructions from the current (topmost) call frame until it
// returns from the outermost frame, a runtime error occurs, or execution
// otherwise halts.
func (vm *VM) run() Result {
	frame := &vm.frames[vm.frameCount-1]

	readByte := func() byte {
		b := frame.closure.Function.Chunk.Code[frame.ip]
		frame.ip++
		return b
	}
	readUint16 := func() uint16 {
		hi := readByte()
		lo := readByte()
		return uint16(hi)<<8 | uint16(lo)
	}
	readConstant := func() value.Value {
		return frame.closure.Function.Chunk.Constants[readByte()]
	}
	readString := func() *value.String {
		return readConstant().AsString()
	}

	for {
		op := value.OpCode(readByte())
		switch op {
		case value.OpConstant:
			vm.push(readConstant())

		case value.OpNil:
			vm.push(value.Nil)
		case value.OpTrue:
			vm.push(value.Bool(true))
		case value.OpFalse:
			vm.push(value.Bool(false))
		case value.OpPop:
			vm.pop()

		case value.OpGetLocal:
			slot := readByte()
			vm.push(vm.stack[frame.base+int(slot)])
		case value.OpSetLocal:
			slot := readByte()
			vm.stack[frame.base+int(slot)] = vm.peek(0)

		case value.OpGetGlobal:
			name := readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				vm.runtimeError("Undefined variable '%s'.", name.Chars)
				return ResultRuntimeError
			}
			vm.push(v)
		case value.OpDefineGlobal:
			name := readString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case value.OpSetGlobal:
			name := readString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				vm.runtimeError("Undefined variable '%s'.", name.Chars)
				return ResultRuntimeError
			}

		case value.OpGetUpvalue:
			slot := readByte()
			vm.push(*frame.closure.Upvalues[slot].Location)
		case value.OpSetUpvalue:
			slot := readByte()
			*frame.closure.Upvalues[slot].Location = vm.peek(0)

		case value.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case value.OpGreater:
			if !vm.binaryNumberOp(op) {
				return ResultRuntimeError
			}
		case value.OpLess:
			if !vm.binaryNumberOp(op) {
				return ResultRuntimeError
			}

		case value.OpAdd:
			if !vm.add() {
				return ResultRuntimeError
			}
		case value.OpSubtract, value.OpMultiply, value.OpDivide:
			if !vm.binaryNumberOp(op) {
				return ResultRuntimeError
			}

		case value.OpNot:
			vm.push(value.Bool(vm.pop().IsFalsy()))
		case value.OpNegate:
			if !vm.peek(0).IsNumber() {
				vm.runtimeError("Operand must be a number.")
				return ResultRuntimeError
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case value.OpPrint:
			vm.Stdout.Write([]byte(vm.pop().String()))
			vm.Stdout.Write([]byte("\n"))

		case value.OpJump:
			offset := readUint16()
			frame.ip += int(offset)
		case value.OpJumpIfFalse:
			offset := readUint16()
			if vm.peek(0).IsFalsy() {
				frame.ip += int(offset)
			}
		case value.OpLoop:
			offset := readUint16()
			frame.ip -= int(offset)

		case value.OpCall:
			argc := int(readByte())
			if !vm.callValue(vm.peek(argc), argc) {
				return ResultRuntimeError
			}
			frame = &vm.frames[vm.frameCount-1]

		case value.OpClosure:
			fn := readConstant().AsObject().(*value.Function)
			closure := vm.heap.NewClosure(fn)
			vm.push(value.FromObject(closure))
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := readByte()
				index := int(readByte())
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.base + index)
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}

		case value.OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case value.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(frame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return ResultOK
			}
			vm.stackTop = frame.base
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]

		default:
			vm.runtimeError("Unknown opcode %d.", byte(op))
			return ResultRuntimeError
		}
	}
}

// binaryNumberOp implements OP_SUBTRACT/OP_MULTIPLY/OP_DIVIDE/OP_GREATER/OP_LESS,
// which all require two number operands.
func (vm *VM) binaryNumberOp(op value.OpCode) bool {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		vm.runtimeError("Operands must be numbers.")
		return false
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	switch op {
	case value.OpSubtract:
		vm.push(value.Number(a - b))
	case value.OpMultiply:
		vm.push(value.Number(a * b))
	case value.OpDivide:
		vm.push(value.Number(a / b))
	case value.OpGreater:
		vm.push(value.Bool(a > b))
	case value.OpLess:
		vm.push(value.Bool(a < b))
	}
	return true
}

// add implements OP_ADD, which overloads + for numbers and strings. String
// operands must be anchored on the stack (they already are, as the two
// operands being added) before Concat interns the result, satisfying the
// heap's GC-safety contract.
func (vm *VM) add() bool {
	switch {
	case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(value.Number(a + b))
		return true
	case vm.peek(0).IsString() && vm.peek(1).IsString():
		b := vm.peek(0).AsString()
		a := vm.peek(1).AsString()
		result := vm.heap.Concat(a, b)
		vm.pop()
		vm.pop()
		vm.push(value.FromObject(result))
		return true
	default:
		vm.runtimeError("Operands must be two numbers or two strings.")
		return false
	}
}
