package compiler

import (
	"github.com/mna/loxvm/lang/token"
	"github.com/mna/loxvm/lang/value"
)

func number(p *Parser, _ bool) {
	p.emitConstant(value.Number(parseNumber(p.previous.Lexeme)))
}

func stringLiteral(p *Parser, _ bool) {
	lexeme := p.previous.Lexeme
	chars := lexeme[1 : len(lexeme)-1] // strip surrounding quotes, no escape processing
	s := p.heap.InternString(chars)
	p.emitConstant(value.FromObject(s))
}

func literal(p *Parser, _ bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emitOp(value.OpFalse)
	case token.TRUE:
		p.emitOp(value.OpTrue)
	case token.NIL:
		p.emitOp(value.OpNil)
	}
}

func grouping(p *Parser, _ bool) {
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
}

func unary(p *Parser, _ bool) {
	opKind := p.previous.Kind
	p.parsePrecedence(PrecUnary)

	switch opKind {
	case token.MINUS:
		p.emitOp(value.OpNegate)
	case token.BANG:
		p.emitOp(value.OpNot)
	}
}

func binary(p *Parser, _ bool) {
	opKind := p.previous.Kind
	rule := getRule(opKind)
	p.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.BANG_EQUAL:
		p.emitOp(value.OpEqual)
		p.emitOp(value.OpNot)
	case token.EQUAL_EQUAL:
		p.emitOp(value.OpEqual)
	case token.GREATER:
		p.emitOp(value.OpGreater)
	case token.GREATER_EQUAL:
		p.emitOp(value.OpLess)
		p.emitOp(value.OpNot)
	case token.LESS:
		p.emitOp(value.OpLess)
	case token.LESS_EQUAL:
		p.emitOp(value.OpGreater)
		p.emitOp(value.OpNot)
	case token.PLUS:
		p.emitOp(value.OpAdd)
	case token.MINUS:
		p.emitOp(value.OpSubtract)
	case token.STAR:
		p.emitOp(value.OpMultiply)
	case token.SLASH:
		p.emitOp(value.OpDivide)
	}
}

// and_ short-circuits: if the left operand is falsy, jump over the right
// operand (leaving the falsy value as the expression's result); otherwise
// pop it and evaluate the right operand.
func and_(p *Parser, _ bool) {
	endJump := p.emitJump(value.OpJumpIfFalse)
	p.emitOp(value.OpPop)
	p.parsePrecedence(PrecAnd)
	p.patchJump(endJump)
}

// or_ short-circuits the other way: if the left operand is falsy, jump past
// the unconditional jump into evaluating the right operand; if truthy, skip
// the right operand entirely and keep the left operand as the result. Note
// that, matching the observed reference behavior, the truthy left operand is
// never popped: it is left on the stack as the expression's value.
func or_(p *Parser, _ bool) {
	elseJump := p.emitJump(value.OpJumpIfFalse)
	endJump := p.emitJump(value.OpJump)

	p.patchJump(elseJump)
	p.emitOp(value.OpPop)

	p.parsePrecedence(PrecOr)
	p.patchJump(endJump)
}

func call(p *Parser, _ bool) {
	argc := p.argumentList()
	p.emitOpByte(value.OpCall, argc)
}

func (p *Parser) argumentList() byte {
	var argc int
	if !p.check(token.RPAREN) {
		for {
			p.expression()
			if argc == 255 {
				p.error("Can't have more than 255 arguments.")
			}
			argc++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after arguments.")
	return byte(argc)
}

func variable(p *Parser, canAssign bool) {
	p.namedVariable(p.previous.Lexeme, canAssign)
}

func (p *Parser) namedVariable(name string, canAssign bool) {
	var getOp, setOp value.OpCode
	arg := resolveLocal(p.fs, name)
	switch {
	case arg == -2:
		p.error("Can't read local variable in its own initializer.")
		arg = 0
		getOp, setOp = value.OpGetLocal, value.OpSetLocal
	case arg != -1:
		getOp, setOp = value.OpGetLocal, value.OpSetLocal
	default:
		if up := resolveUpvalue(p.fs, name); up != -1 {
			arg = up
			getOp, setOp = value.OpGetUpvalue, value.OpSetUpvalue
		} else {
			arg = int(p.identifierConstant(name))
			getOp, setOp = value.OpGetGlobal, value.OpSetGlobal
		}
	}

	if canAssign && p.match(token.EQUAL) {
		p.expression()
		p.emitOpByte(setOp, byte(arg))
	} else {
		p.emitOpByte(getOp, byte(arg))
	}
}

// identifierConstant interns name and registers it as a chunk constant, for
// use as the operand of the global-variable opcodes.
func (p *Parser) identifierConstant(name string) byte {
	s := p.heap.InternString(name)
	return p.makeConstant(value.FromObject(s))
}
