package compiler

import "github.com/mna/loxvm/lang/token"

type parseFn func(p *Parser, canAssign bool)

// parseRule maps a token kind to its prefix handler (if it can start an
// expression), its infix handler (if it can continue one), and the
// precedence used when that token appears as an infix/binary operator.
type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules [token.NumKinds]parseRule

func init() {
	rules[token.LPAREN] = parseRule{prefix: grouping, infix: call, precedence: PrecCall}
	rules[token.MINUS] = parseRule{prefix: unary, infix: binary, precedence: PrecTerm}
	rules[token.PLUS] = parseRule{infix: binary, precedence: PrecTerm}
	rules[token.SLASH] = parseRule{infix: binary, precedence: PrecFactor}
	rules[token.STAR] = parseRule{infix: binary, precedence: PrecFactor}
	rules[token.BANG] = parseRule{prefix: unary}
	rules[token.BANG_EQUAL] = parseRule{infix: binary, precedence: PrecEquality}
	rules[token.EQUAL_EQUAL] = parseRule{infix: binary, precedence: PrecEquality}
	rules[token.GREATER] = parseRule{infix: binary, precedence: PrecComparison}
	rules[token.GREATER_EQUAL] = parseRule{infix: binary, precedence: PrecComparison}
	rules[token.LESS] = parseRule{infix: binary, precedence: PrecComparison}
	rules[token.LESS_EQUAL] = parseRule{infix: binary, precedence: PrecComparison}
	rules[token.IDENT] = parseRule{prefix: variable}
	rules[token.STRING] = parseRule{prefix: stringLiteral}
	rules[token.NUMBER] = parseRule{prefix: number}
	rules[token.AND] = parseRule{infix: and_, precedence: PrecAnd}
	rules[token.OR] = parseRule{infix: or_, precedence: PrecOr}
	rules[token.FALSE] = parseRule{prefix: literal}
	rules[token.TRUE] = parseRule{prefix: literal}
	rules[token.NIL] = parseRule{prefix: literal}
}

func getRule(k token.Kind) *parseRule { return &rules[k] }

// parsePrecedence is the Pratt driver: advance, dispatch the prefix handler
// for the token just consumed (with can_assign = precedence <= assignment),
// then keep consuming infix operators whose precedence is at least prec.
func (p *Parser) parsePrecedence(prec Precedence) {
	p.advance()
	prefixRule := getRule(p.previous.Kind).prefix
	if prefixRule == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(p, canAssign)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infixRule := getRule(p.previous.Kind).infix
		infixRule(p, canAssign)
	}

	if canAssign && p.match(token.EQUAL) {
		p.error("Invalid assignment target.")
	}
}

func (p *Parser) expression() { p.parsePrecedence(PrecAssignment) }
