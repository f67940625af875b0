package ast

import (
	"strconv"
	"strings"

	"github.com/calcengine/formulacore/ref"
	"github.com/calcengine/formulacore/token"
	"github.com/calcengine/formulacore/value"
)

// Parse consumes a token stream into an AST using Pratt/precedence-climbing
// (§4.2). includeWhitespace should match how the tokens were produced;
// whitespace tokens are skipped by the parser regardless (they only matter
// to callers that want to re-render formatting). classifier is nil-safe and
// defaults to DefaultVolatilityClassifier.
func Parse(tokens []token.Token, includeWhitespace bool, classifier VolatilityClassifier) (*Node, error) {
	if classifier == nil {
		classifier = DefaultVolatilityClassifier
	}
	// Leading literal fast-path (§4.2 step 1): a plain-text cell lexes as a
	// single Literal token.
	if len(tokens) == 1 && tokens[0].Type == token.Literal {
		t := tokens[0]
		return &Node{Kind: LiteralNode, Literal: value.TextV(t.Value), Token: &t}, nil
	}

	p := &parser{tokens: filterWhitespace(tokens), classifier: classifier}
	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		tok := p.peek()
		return nil, &ParseError{Pos: tok.Pos, Msg: "unexpected trailing token " + tok.Value}
	}
	return node, nil
}

func filterWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != token.Whitespace {
			out = append(out, t)
		}
	}
	return out
}

type parser struct {
	tokens     []token.Token
	pos        int
	classifier VolatilityClassifier
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Type: -1, Pos: p.lastPos()}
	}
	return p.tokens[p.pos]
}

func (p *parser) lastPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	return last.Pos + len(last.Value)
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ token.Type, sub token.Subtype) (token.Token, error) {
	if p.atEnd() {
		return token.Token{}, &ParseError{Pos: p.lastPos(), Msg: "unexpected end of formula"}
	}
	t := p.peek()
	if t.Type != typ || (sub != token.None && t.Subtype != sub) {
		return token.Token{}, &ParseError{Pos: t.Pos, Msg: "unexpected token " + t.Value}
	}
	return p.advance(), nil
}

// parseExpression is parse_binary_op(min_prec) per §4.2 step 3.
func (p *parser) parseExpression(minPrec int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.atEnd() || p.peek().Type != token.OpInfix {
			break
		}
		opTok := p.peek()
		prec, rightAssoc, ok := token.Precedence(opTok.Value)
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		left = &Node{
			Kind: BinaryOpNode, Op: opTok.Value, Left: left, Right: right,
			Token:            &opTok,
			ContainsVolatile: left.ContainsVolatile || right.ContainsVolatile,
		}
	}
	return left, nil
}

// parseUnary applies any prefix operators right-associatively (§4.2 step
// 4), then parses postfix.
func (p *parser) parseUnary() (*Node, error) {
	if !p.atEnd() && p.peek().Type == token.OpInfix && (p.peek().Value == "+" || p.peek().Value == "-") {
		opTok := p.advance()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: UnaryOpNode, Op: opTok.Value, Expr: expr, Token: &opTok, ContainsVolatile: expr.ContainsVolatile}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary then consumes any postfix operators
// left-to-right (§4.2 step 5).
func (p *parser) parsePostfix() (*Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.peek().Type == token.OpPostfix {
		opTok := p.advance()
		node = &Node{Kind: UnaryOpNode, Op: opTok.Value, Expr: node, Token: &opTok, ContainsVolatile: node.ContainsVolatile}
	}
	return node, nil
}

// parsePrimary is §4.2 step 6.
func (p *parser) parsePrimary() (*Node, error) {
	if p.atEnd() {
		return nil, &ParseError{Pos: p.lastPos(), Msg: "unexpected end of formula"}
	}
	t := p.peek()
	switch {
	case t.Type == token.Operand:
		return p.parseOperand()
	case t.Type == token.Func && t.Subtype == token.SubOpen:
		p.advance()
		name := strings.TrimSuffix(t.Value, "(")
		args, err := p.parseFunctionArguments()
		if err != nil {
			return nil, err
		}
		volatile := p.classifier(strings.ToLower(name))
		for _, a := range args {
			volatile = volatile || a.ContainsVolatile
		}
		return &Node{Kind: FunctionNode, Name: name, Args: args, Token: &t, ContainsVolatile: volatile}, nil
	case t.Type == token.Paren && t.Subtype == token.SubOpen:
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Paren, token.SubClose); err != nil {
			return nil, err
		}
		return inner, nil
	case t.Type == token.ArrayDelim && t.Subtype == token.SubOpen:
		return p.parseArray()
	default:
		return nil, &ParseError{Pos: t.Pos, Msg: "unexpected token " + t.Value}
	}
}

// parseOperand is §4.2 step 7.
func (p *parser) parseOperand() (*Node, error) {
	t := p.advance()
	switch t.Subtype {
	case token.SubNumber:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: "malformed number " + t.Value}
		}
		return &Node{Kind: LiteralNode, Literal: value.NumberV(f), Token: &t}, nil
	case token.SubText:
		unquoted := unquoteText(t.Value)
		return &Node{Kind: LiteralNode, Literal: value.TextV(unquoted), Token: &t}, nil
	case token.SubLogical:
		return &Node{Kind: LiteralNode, Literal: value.BoolV(strings.EqualFold(t.Value, "TRUE")), Token: &t}, nil
	case token.SubError:
		kind, ok := value.ParseErrorLiteral(t.Value)
		if !ok {
			return nil, &ParseError{Pos: t.Pos, Msg: "unknown error literal " + t.Value}
		}
		return &Node{Kind: LiteralNode, Literal: value.ErrorV(kind), Token: &t}, nil
	case token.SubRange:
		r, err := ref.Parse(t.Value)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: "invalid reference " + t.Value}
		}
		return &Node{Kind: ReferenceNode, RefText: t.Value, Ref: r, Token: &t}, nil
	default:
		return nil, &ParseError{Pos: t.Pos, Msg: "unrecognized operand " + t.Value}
	}
}

// unquoteText strips surrounding quotes and unescapes doubled quotes. The
// lexer already produced Value including the surrounding quotes and with
// doubled quotes intact (it does not unescape so the verbatim source slice
// stays recoverable); the parser does the semantic unescape here.
func unquoteText(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	return strings.ReplaceAll(inner, "\"\"", "\"")
}

// parseFunctionArguments is §4.2 step 8: comma-separated expressions where
// an empty slot (leading separator, two consecutive separators, or a
// separator immediately before ')') yields a literal empty-text argument.
func (p *parser) parseFunctionArguments() ([]*Node, error) {
	var args []*Node
	if !p.atEnd() && p.peek().Type == token.Paren && p.peek().Subtype == token.SubClose {
		p.advance()
		return args, nil
	}
	for {
		if p.atEnd() {
			return nil, &ParseError{Pos: p.lastPos(), Msg: "unmatched function parenthesis"}
		}
		if p.peek().Type == token.Sep || (p.peek().Type == token.Paren && p.peek().Subtype == token.SubClose) {
			args = append(args, &Node{Kind: LiteralNode, Literal: value.TextV("")})
		} else {
			expr, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		}
		if p.atEnd() {
			return nil, &ParseError{Pos: p.lastPos(), Msg: "unmatched function parenthesis"}
		}
		if p.peek().Type == token.Sep && p.peek().Subtype == token.SubArg {
			p.advance()
			continue
		}
		if _, err := p.expect(token.Paren, token.SubClose); err != nil {
			return nil, err
		}
		break
	}
	return args, nil
}

// parseArray is §4.2 step 9.
func (p *parser) parseArray() (*Node, error) {
	openTok := p.advance() // '{'
	var rows [][]*Node
	volatile := false
	for {
		row, err := p.parseArrayRow()
		if err != nil {
			return nil, err
		}
		for _, el := range row {
			volatile = volatile || el.ContainsVolatile
		}
		rows = append(rows, row)
		if p.atEnd() {
			return nil, &ParseError{Pos: p.lastPos(), Msg: "unterminated array literal"}
		}
		if p.peek().Type == token.Sep && p.peek().Subtype == token.SubRow {
			p.advance()
			continue
		}
		if _, err := p.expect(token.ArrayDelim, token.SubClose); err != nil {
			return nil, err
		}
		break
	}
	return &Node{Kind: ArrayNode, ArrayRows: rows, Token: &openTok, ContainsVolatile: volatile}, nil
}

func (p *parser) parseArrayRow() ([]*Node, error) {
	var row []*Node
	for {
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		row = append(row, expr)
		if !p.atEnd() && p.peek().Type == token.Sep && p.peek().Subtype == token.SubArg {
			p.advance()
			continue
		}
		break
	}
	return row, nil
}
