package sexpr

import (
	"strconv"
	"strings"
)

// ValueType classifies a parsed Value node.
type ValueType int

const (
	ValSymbol ValueType = iota
	ValNumber
	ValList
)

// Value is a generic S-expression node: an atom (symbol or number) or a
// list of sub-Values. The grammars of §6 (initial predicates, transition
// expressions, CTL formulas) are all lowered from this shared tree by the
// build* functions in build.go.
type Value struct {
	Type   ValueType
	Symbol string
	Number int
	List   []Value
}

// String renders v back to its textual form, used to name the offending
// sub-expression in parse-error diagnostics.
func (v Value) String() string {
	switch v.Type {
	case ValSymbol:
		return v.Symbol
	case ValNumber:
		return strconv.Itoa(v.Number)
	case ValList:
		parts := make([]string, len(v.List))
		for i, it := range v.List {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "?"
}

// IsSymbol reports whether v is a symbol equal to s.
func (v Value) IsSymbol(s string) bool {
	return v.Type == ValSymbol && v.Symbol == s
}

// parser is a recursive-descent reader over a token stream, following the
// tokenizer/parser split of rfielding-kripke-ctl's lisp reader, simplified
// to this format's atom set (no strings, no quoting).
type parser struct {
	toks []Tok
	pos  int
}

// ParseAll reads every top-level form in src into a Value list.
func ParseAll(src string) ([]Value, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, newError(ErrSyntax, "", "%v", err)
	}
	p := &parser{toks: toks}
	var forms []Value
	for p.peek().Type != TokEOF {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

func (p *parser) peek() Tok {
	return p.toks[p.pos]
}

func (p *parser) advance() Tok {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) parseValue() (Value, error) {
	tok := p.peek()
	switch tok.Type {
	case TokLParen:
		p.advance()
		var items []Value
		for p.peek().Type != TokRParen {
			if p.peek().Type == TokEOF {
				return Value{}, newError(ErrSyntax, "", "unterminated list starting at position %d", tok.Pos)
			}
			item, err := p.parseValue()
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		p.advance() // consume ')'
		return Value{Type: ValList, List: items}, nil
	case TokRParen:
		return Value{}, newError(ErrSyntax, "", "unexpected %q at position %d", tok.Text, tok.Pos)
	case TokNumber:
		p.advance()
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return Value{}, newError(ErrInteger, tok.Text, "%v", err)
		}
		return Value{Type: ValNumber, Number: n}, nil
	case TokSymbol:
		p.advance()
		return Value{Type: ValSymbol, Symbol: tok.Text}, nil
	default:
		return Value{}, newError(ErrSyntax, "", "unexpected end of input")
	}
}
