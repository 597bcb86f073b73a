package maincmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mna/loxvm/lang/vm"
	"github.com/mna/mainer"
)

func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
	var src []byte
	var err error
	if len(args) == 0 {
		src, err = io.ReadAll(stdio.Stdin)
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		return printError(stdio, err)
	}

	machine := vm.New()
	machine.Stdout = stdio.Stdout
	machine.Stderr = stdio.Stderr
	machine.Heap().StressGC = c.StressGC

	switch machine.Interpret(string(src)) {
	case vm.ResultCompileError:
		return errors.New("compile error")
	case vm.ResultRuntimeError:
		return errors.New("runtime error")
	default:
		return nil
	}
}
