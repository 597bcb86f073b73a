package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/loxvm/lang/vm"
	"github.com/mna/mainer"
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	machine := vm.New()
	machine.Stdout = stdio.Stdout
	machine.Stderr = stdio.Stderr
	machine.Heap().StressGC = c.StressGC

	scan := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if !scan.Scan() {
			return scan.Err()
		}
		machine.Interpret(scan.Text())
	}
}
