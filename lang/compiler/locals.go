package compiler

import (
	"golang.org/x/exp/slices"

	"github.com/mna/loxvm/lang/value"
)

func (p *Parser) beginScope() { p.fs.scopeDepth++ }

// endScope closes the innermost scope: every local declared in it is either
// closed over (if captured, via OP_CLOSE_UPVALUE, which also transitions any
// still-open upvalue referencing it) or simply popped off the stack.
func (p *Parser) endScope() {
	p.fs.scopeDepth--

	locals := p.fs.locals
	n := len(locals)
	for n > 0 && locals[n-1].depth > p.fs.scopeDepth {
		if locals[n-1].isCaptured {
			p.emitOp(value.OpCloseUpvalue)
		} else {
			p.emitOp(value.OpPop)
		}
		n--
	}
	p.fs.locals = locals[:n]
}

func identifiersEqual(a, b string) bool { return a == b }

// declareLocal adds name as a new local in the current scope, initially
// uninitialized (depth -1). Redeclaring a name already present in the same
// scope is a compile error.
func (p *Parser) declareLocal(name string) {
	if p.fs.scopeDepth == 0 {
		return // globals are not tracked as locals
	}

	locals := p.fs.locals
	for i := len(locals) - 1; i >= 0; i-- {
		l := locals[i]
		if l.depth != -1 && l.depth < p.fs.scopeDepth {
			break
		}
		if identifiersEqual(name, l.name) {
			p.error("Already a variable with this name in this scope.")
		}
	}

	if len(p.fs.locals) >= MaxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.fs.locals = append(p.fs.locals, local{name: name, depth: -1})
}

func (p *Parser) markLocalInitialized() {
	if p.fs.scopeDepth == 0 {
		return
	}
	p.fs.locals[len(p.fs.locals)-1].depth = p.fs.scopeDepth
}

// resolveLocal searches fs's locals high-to-low (innermost first) for name,
// returning its slot or -1 if not found there.
func resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		l := fs.locals[i]
		if identifiersEqual(name, l.name) {
			if l.depth == -1 {
				return -2 // sentinel: read in its own initializer
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue resolves name as a captured variable of an enclosing
// function, registering (and deduplicating) an upvalue entry in fs and every
// function between fs and the one that owns the local, as described in
// spec.md's upvalue resolution algorithm.
func resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}

	if local := resolveLocal(fs.enclosing, name); local >= 0 {
		fs.enclosing.locals[local].isCaptured = true
		return addUpvalue(fs, uint8(local), true)
	}

	if up := resolveUpvalue(fs.enclosing, name); up >= 0 {
		return addUpvalue(fs, uint8(up), false)
	}

	return -1
}

func addUpvalue(fs *funcState, index uint8, isLocal bool) int {
	want := upvalueRef{isLocal: isLocal, index: index}
	if i := slices.Index(fs.upvalues, want); i >= 0 {
		return i
	}
	if len(fs.upvalues) >= MaxLocals {
		return -1
	}
	fs.upvalues = append(fs.upvalues, want)
	fs.fn.UpvalueCount = len(fs.upvalues)
	return len(fs.upvalues) - 1
}
