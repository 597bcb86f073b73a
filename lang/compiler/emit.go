package compiler

import "github.com/mna/loxvm/lang/value"

func (p *Parser) emitByte(b byte) {
	p.chunk().Write(b, p.previous.Line)
}

func (p *Parser) emitOp(op value.OpCode) {
	p.emitByte(byte(op))
}

func (p *Parser) emitOpByte(op value.OpCode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

func (p *Parser) emitReturn() {
	p.emitOp(value.OpNil)
	p.emitOp(value.OpReturn)
}

// makeConstant appends v to the current chunk without anchoring it first
// (appending to the constant pool does not allocate through the heap, so no
// collection can run before v is reachable from the chunk), reporting a
// compile error if the chunk is already full.
func (p *Parser) makeConstant(v value.Value) byte {
	if len(p.chunk().Constants) >= value.MaxConstants {
		p.error("Too many constants in one chunk.")
		return 0
	}
	idx := p.chunk().AddConstant(v)
	return byte(idx)
}

func (p *Parser) emitConstant(v value.Value) {
	p.emitOpByte(value.OpConstant, p.makeConstant(v))
}

// emitJump writes a jump/jump-if-false opcode followed by a two-byte
// placeholder operand, returning the offset of the placeholder's first byte
// so it can be patched once the jump target is known.
func (p *Parser) emitJump(op value.OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.chunk().Code) - 2
}

// patchJump backfills the placeholder at offset with the distance from the
// byte after the placeholder to the current end of the chunk.
func (p *Parser) patchJump(offset int) {
	jump := len(p.chunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("Too much code to jump over.")
		return
	}
	c := p.chunk()
	c.Code[offset] = byte(jump >> 8)
	c.Code[offset+1] = byte(jump)
}

// emitLoop writes OP_LOOP with the backward distance to loopStart.
func (p *Parser) emitLoop(loopStart int) {
	p.emitOp(value.OpLoop)

	offset := len(p.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("Loop body too large.")
		return
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}
