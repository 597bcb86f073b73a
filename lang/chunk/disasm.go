// Package chunk implements a disassembler for value.Chunk, printing bytecode
// in the same one-instruction-per-line format the reference implementation's
// debug.c uses. It depends only on lang/value, never the reverse, so the
// compiler and VM packages never need to import it.
package chunk

import (
	"fmt"
	"io"

	"github.com/mna/loxvm/lang/value"
)

// Disassemble writes every instruction in c to w, preceded by a name header,
// then does the same for the chunk of every function in c's constant pool, so
// nested function bodies are listed after the chunk that declares them.
func Disassemble(w io.Writer, c *value.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = disassembleInstruction(w, c, offset)
	}
	for _, k := range c.Constants {
		if fn, ok := k.AsObject().(*value.Function); ok {
			Disassemble(w, &fn.Chunk, fn.String())
		}
	}
}

// disassembleInstruction prints the instruction at offset and returns the
// offset of the next one.
func disassembleInstruction(w io.Writer, c *value.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := value.OpCode(c.Code[offset])
	switch op {
	case value.OpConstant, value.OpDefineGlobal, value.OpGetGlobal, value.OpSetGlobal:
		return constantInstruction(w, op, c, offset)
	case value.OpGetLocal, value.OpSetLocal, value.OpGetUpvalue, value.OpSetUpvalue, value.OpCall:
		return byteInstruction(w, op, c, offset)
	case value.OpJump, value.OpJumpIfFalse:
		return jumpInstruction(w, op, c, offset, 1)
	case value.OpLoop:
		return jumpInstruction(w, op, c, offset, -1)
	case value.OpClosure:
		return closureInstruction(w, c, offset)
	default:
		fmt.Fprintf(w, "%s\n", op)
		return offset + 1
	}
}

func constantInstruction(w io.Writer, op value.OpCode, c *value.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op, idx, c.Constants[idx].String())
	return offset + 2
}

func byteInstruction(w io.Writer, op value.OpCode, c *value.Chunk, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d\n", op, slot)
	return offset + 2
}

func jumpInstruction(w io.Writer, op value.OpCode, c *value.Chunk, offset, sign int) int {
	jump := int(c.ReadUint16(offset + 1))
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-16s %4d -> %d\n", op, offset, target)
	return offset + 3
}

func closureInstruction(w io.Writer, c *value.Chunk, offset int) int {
	idx := c.Code[offset+1]
	constant := c.Constants[idx]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", value.OpClosure, idx, constant.String())
	offset += 2

	fn, ok := constant.AsObject().(*value.Function)
	if !ok {
		return offset
	}
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := c.Code[offset]
		index := c.Code[offset+1]
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		fmt.Fprintf(w, "%04d      |                     %s %d\n", offset, kind, index)
		offset += 2
	}
	return offset
}
