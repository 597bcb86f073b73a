package compiler

import "fmt"

// CompileError is a single diagnostic produced while compiling: a source
// line and the message describing what went wrong, optionally naming the
// offending lexeme. A single compilation may accumulate many of these.
type CompileError struct {
	Line    int
	Where   string // offending lexeme, or "" if not applicable (e.g. at EOF)
	Message string
}

func (e CompileError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Where, e.Message)
	}
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}
