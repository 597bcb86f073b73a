package chunk_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/heap"
	"github.com/stretchr/testify/require"
)

func TestDisassembleSimpleExpression(t *testing.T) {
	h := heap.New()
	fn, errs, ok := compiler.Compile(`print 1 + 2;`, h)
	require.True(t, ok, "%v", errs)

	var buf bytes.Buffer
	chunk.Disassemble(&buf, &fn.Chunk, "test")

	out := buf.String()
	require.Contains(t, out, "== test ==")
	require.Contains(t, out, "OP_CONSTANT")
	require.Contains(t, out, "OP_ADD")
	require.Contains(t, out, "OP_PRINT")
	require.Contains(t, out, "OP_RETURN")
}

func TestDisassembleJumpsAndClosures(t *testing.T) {
	h := heap.New()
	fn, errs, ok := compiler.Compile(`
		fun outer() {
			var x = 1;
			fun inner() { return x; }
			if (x) { return inner; }
			return nil;
		}
	`, h)
	require.True(t, ok, "%v", errs)

	var buf bytes.Buffer
	chunk.Disassemble(&buf, &fn.Chunk, "outer-script")

	out := buf.String()
	require.Contains(t, out, "OP_CLOSURE")
	require.Contains(t, out, "OP_JUMP_IF_FALSE")
}
