// Package compiler implements the single-pass Pratt parser that lowers Lox
// source text directly to bytecode: there is no intermediate AST. Parsing
// and code generation happen in the same walk, and lexical scopes, local
// slots and captured upvalues are all resolved on the fly.
package compiler

import (
	"strconv"

	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
	"github.com/mna/loxvm/lang/value"
)

// MaxLocals bounds the number of local variables (and, separately, upvalues)
// a single function body may declare: both are addressed by a single-byte
// operand.
const MaxLocals = 256

// funcKind distinguishes the implicit top-level script function from an
// explicit `fun` declaration; the two differ only in that any `return`
// statement is a compile error in the script function.
type funcKind int

const (
	kindScript funcKind = iota
	kindFunction
)

type local struct {
	name       string
	depth      int // -1 means "declared but not yet initialized"
	isCaptured bool
}

type upvalueRef struct {
	isLocal bool
	index   uint8
}

// funcState holds the compiler state for one function body being compiled.
// Nested function declarations push a new funcState and pop it again once
// the body is fully compiled, forming the "linked stack of compilers" spec.md
// describes.
type funcState struct {
	enclosing *funcState

	fn       *value.Function
	funcType funcKind

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int
}

// Parser holds all state shared across the whole compilation: the token
// cursor, error accumulation/recovery, and the current function being built.
type Parser struct {
	scanner scanner.Scanner
	heap    *heap.Heap

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    []CompileError

	fs *funcState
}

// Compile compiles source into a top-level Function (the implicit script
// body). It returns the function and true on success; on failure it returns
// nil and false, with the accumulated CompileErrors describing every problem
// found (panicMode recovery lets compilation continue past the first error).
func Compile(source string, h *heap.Heap) (*value.Function, []CompileError, bool) {
	p := &Parser{heap: h}
	p.scanner.Init([]byte(source))

	p.beginFunction(kindScript, "")
	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	fn := p.endFunction()

	ok := !p.hadError
	if !ok {
		return nil, p.errors, false
	}
	return fn, p.errors, true
}

func (p *Parser) beginFunction(kind funcKind, name string) {
	fn := p.heap.NewFunction()
	p.heap.PushCompilerRoot(fn)
	if name != "" {
		fn.Name = p.heap.InternString(name)
	}

	fs := &funcState{
		enclosing: p.fs,
		fn:        fn,
		funcType:  kind,
	}
	// Slot 0 is reserved: at runtime it holds the closure being called itself.
	fs.locals = append(fs.locals, local{name: "", depth: 0})
	p.fs = fs
}

func (p *Parser) endFunction() *value.Function {
	p.emitReturn()
	fn := p.fs.fn
	p.heap.PopCompilerRoot()
	p.fs = p.fs.enclosing
	return fn
}

func (p *Parser) chunk() *value.Chunk { return &p.fs.fn.Chunk }

// --- token stream plumbing ---

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.scanner.Scan()
		if p.current.Kind != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(k token.Kind, message string) {
	if p.current.Kind == k {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *Parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }
func (p *Parser) error(message string)          { p.errorAt(p.previous, message) }

func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	where := tok.Lexeme
	if tok.Kind == token.EOF {
		where = ""
	}
	p.errors = append(p.errors, CompileError{Line: tok.Line, Where: where, Message: message})
	p.hadError = true
}

// synchronize discards tokens until it reaches what looks like a statement
// boundary, so that one error does not cascade into a flood of spurious
// follow-on errors.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

func parseNumber(lexeme string) float64 {
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}
