package maincmd

import (
	"context"
	"os"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/mainer"
)

func (c *Cmd) Disassemble(_ context.Context, stdio mainer.Stdio, args []string) error {
	var firstErr error
	for _, path := range args {
		if err := disassembleFile(stdio, path); err != nil {
			printError(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func disassembleFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	h := heap.New()
	fn, errs, ok := compiler.Compile(string(src), h)
	if !ok {
		for _, e := range errs {
			printError(stdio, e)
		}
		return errs[0]
	}

	chunk.Disassemble(stdio.Stdout, &fn.Chunk, path)
	return nil
}
