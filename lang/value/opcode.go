package value

// OpCode identifies a single bytecode instruction. Operand sizes are implicit
// in the opcode and documented alongside each constant; 16-bit operands are
// encoded big-endian.
type OpCode byte

//nolint:revive
const (
	OpConstant OpCode = iota // u8 constant-index
	OpNil
	OpTrue
	OpFalse
	OpPop

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate // arithmetic negation
	OpNot    // boolean negation
	OpEqual
	OpGreater
	OpLess

	OpPrint

	OpDefineGlobal // u8 constant-index (name)
	OpGetGlobal    // u8 constant-index (name)
	OpSetGlobal    // u8 constant-index (name)
	OpGetLocal     // u8 stack-slot
	OpSetLocal     // u8 stack-slot
	OpGetUpvalue   // u8 upvalue-index
	OpSetUpvalue   // u8 upvalue-index
	OpCloseUpvalue

	OpJump        // u16 forward offset
	OpJumpIfFalse // u16 forward offset
	OpLoop        // u16 backward offset

	OpCall    // u8 argc
	OpClosure // u8 constant-index, then one (isLocal u8, index u8) pair per upvalue of the function
	OpReturn
)

var opcodeNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNegate:       "OP_NEGATE",
	OpNot:          "OP_NOT",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpPrint:        "OP_PRINT",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetUpvalue:   "OP_GET_UPVALUE",
	OpSetUpvalue:   "OP_SET_UPVALUE",
	OpCloseUpvalue: "OP_CLOSE_UPVALUE",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpClosure:      "OP_CLOSURE",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "OP_UNKNOWN"
}
