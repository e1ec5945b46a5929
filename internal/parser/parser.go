// Package parser reads the textual assembly form into graphs.
//
// The parser is purely syntactic: nodes are constructed on the
// unchecked path with the result types the text declares, and callers
// run verification afterwards. Parsing stops at the first error; the
// verifier, not the parser, is the collect-all layer.
package parser

import (
	"math/big"
	"os"
	"strconv"

	"github.com/roach88/sigil/internal/builder"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// ParseFile reads and parses one assembly file.
func ParseFile(path string) ([]*ir.Graph, *ir.Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ir.Errorf(ir.ErrSyntax, "read %s: %v", path, err)
	}
	return Parse(path, string(data))
}

// Parse parses assembly text. The file name is only used for
// diagnostic locations.
func Parse(file, src string) ([]*ir.Graph, *ir.Diagnostic) {
	p := &parser{file: file, toks: newLexer(src).lex()}
	var graphs []*ir.Graph
	for p.peek().kind != tokEOF {
		g, diag := p.parseGraph()
		if diag != nil {
			return nil, diag
		}
		graphs = append(graphs, g)
	}
	if len(graphs) == 0 {
		return nil, p.errorf("input contains no graphs")
	}
	return graphs, nil
}

type parser struct {
	file string
	toks []token
	pos  int

	// values in scope of the graph being parsed
	scope map[string]*ir.Value
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) loc() ir.Loc { return ir.Loc{File: p.file, Line: p.peek().line} }

func (p *parser) errorf(format string, args ...any) *ir.Diagnostic {
	return ir.Errorf(ir.ErrSyntax, format, args...).At(p.loc())
}

func (p *parser) expect(kind tokenKind, what string) (token, *ir.Diagnostic) {
	t := p.peek()
	if t.kind != kind {
		return token{}, p.errorf("expected %s, found %s", what, t)
	}
	return p.advance(), nil
}

func (p *parser) parseGraph() (*ir.Graph, *ir.Diagnostic) {
	if t := p.peek(); t.kind != tokIdent || t.text != "graph" {
		return nil, p.errorf("expected 'graph', found %s", t)
	}
	p.advance()
	name, diag := p.expect(tokSymbol, "graph name")
	if diag != nil {
		return nil, diag
	}

	g := ir.NewGraph(name.text)
	p.scope = make(map[string]*ir.Value)

	if _, diag := p.expect(tokLParen, "'('"); diag != nil {
		return nil, diag
	}
	for p.peek().kind != tokRParen {
		if len(g.Args) > 0 {
			if _, diag := p.expect(tokComma, "','"); diag != nil {
				return nil, diag
			}
		}
		arg, diag := p.expect(tokValue, "argument name")
		if diag != nil {
			return nil, diag
		}
		if _, diag := p.expect(tokColon, "':'"); diag != nil {
			return nil, diag
		}
		t, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		if _, dup := p.scope[arg.text]; dup {
			return nil, p.errorf("duplicate name %%%s", arg.text)
		}
		p.scope[arg.text] = g.AddArg(arg.text, t)
	}
	p.advance() // )

	if _, diag := p.expect(tokLBrace, "'{'"); diag != nil {
		return nil, diag
	}
	b := builder.New(g)
	for p.peek().kind != tokRBrace {
		if diag := p.parseStmt(b); diag != nil {
			return nil, diag
		}
	}
	p.advance() // }
	return g, nil
}

// parseStmt parses one operation statement:
//
//	%x, %y = dialect.op %a, %b {attr = v} : type, type
//
// The result list and the trailing type list are absent for
// zero-result operations.
func (p *parser) parseStmt(b *builder.Builder) *ir.Diagnostic {
	loc := p.loc()

	var resultNames []string
	if p.peek().kind == tokValue {
		for {
			name := p.advance()
			if _, dup := p.scope[name.text]; dup {
				return p.errorf("duplicate name %%%s", name.text)
			}
			resultNames = append(resultNames, name.text)
			if p.peek().kind != tokComma {
				break
			}
			p.advance()
		}
		if _, diag := p.expect(tokEq, "'='"); diag != nil {
			return diag
		}
	}

	kind, diag := p.parseOpName()
	if diag != nil {
		return diag
	}

	var operands []*ir.Value
	for p.peek().kind == tokValue {
		name := p.advance()
		v, ok := p.scope[name.text]
		if !ok {
			return ir.Errorf(ir.ErrUnknownValue, "undefined value %%%s", name.text).
				At(ir.Loc{File: p.file, Line: name.line})
		}
		operands = append(operands, v)
		if p.peek().kind != tokComma {
			break
		}
		p.advance()
	}

	var attrs ir.AttrSet
	if p.peek().kind == tokLBrace {
		attrs, diag = p.parseAttrs()
		if diag != nil {
			return diag
		}
	}

	results := make([]builder.DeclaredResult, len(resultNames))
	if len(resultNames) > 0 {
		if _, diag := p.expect(tokColon, "':'"); diag != nil {
			return diag
		}
		for i, name := range resultNames {
			if i > 0 {
				if _, diag := p.expect(tokComma, "','"); diag != nil {
					return diag
				}
			}
			t, diag := p.parseType()
			if diag != nil {
				return diag
			}
			results[i] = builder.DeclaredResult{Name: name, Type: t}
		}
	}

	n := b.BuildUnchecked(kind, operands, attrs, results, loc)
	for _, r := range n.Results {
		p.scope[r.Name] = r
	}
	return nil
}

func (p *parser) parseOpName() (ir.OpKind, *ir.Diagnostic) {
	dialect, diag := p.expect(tokIdent, "operation name")
	if diag != nil {
		return "", diag
	}
	if _, diag := p.expect(tokDot, "'.'"); diag != nil {
		return "", diag
	}
	mnemonic, diag := p.expect(tokIdent, "operation mnemonic")
	if diag != nil {
		return "", diag
	}
	kind := ir.OpKind(dialect.text + "." + mnemonic.text)
	if !ir.KnownKinds[kind] {
		return "", ir.Errorf(ir.ErrUnknownOp, "unknown operation %s", kind).
			At(ir.Loc{File: p.file, Line: dialect.line})
	}
	return kind, nil
}

func (p *parser) parseAttrs() (ir.AttrSet, *ir.Diagnostic) {
	p.advance() // {
	var attrs ir.AttrSet
	for p.peek().kind != tokRBrace {
		if len(attrs) > 0 {
			if _, diag := p.expect(tokComma, "','"); diag != nil {
				return nil, diag
			}
		}
		name, diag := p.expect(tokIdent, "attribute name")
		if diag != nil {
			return nil, diag
		}
		if _, diag := p.expect(tokEq, "'='"); diag != nil {
			return nil, diag
		}
		v, diag := p.parseAttrValue(name.text)
		if diag != nil {
			return nil, diag
		}
		attrs = append(attrs, ir.Attr{Name: name.text, Value: v})
	}
	p.advance() // }
	return attrs, nil
}

// parseAttrValue parses an attribute value. Numeric attributes named
// "value" hold constant payloads of arbitrary width and parse as big
// integers; every other numeric attribute is a small structural
// parameter.
func (p *parser) parseAttrValue(attrName string) (ir.AttrValue, *ir.Diagnostic) {
	switch t := p.peek(); t.kind {
	case tokInt:
		p.advance()
		if attrName == "value" {
			v, ok := new(big.Int).SetString(t.text, 10)
			if !ok {
				return nil, p.errorf("bad integer literal %q", t.text)
			}
			return ir.BigIntAttr{Value: v}, nil
		}
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, p.errorf("bad integer literal %q: %v", t.text, err)
		}
		return ir.IntAttr(v), nil
	case tokString:
		p.advance()
		return ir.StringAttr(t.text), nil
	case tokLBracket:
		p.advance()
		var list ir.ListAttr
		for p.peek().kind != tokRBracket {
			if len(list) > 0 {
				if _, diag := p.expect(tokComma, "','"); diag != nil {
					return nil, diag
				}
			}
			v, diag := p.parseAttrValue(attrName)
			if diag != nil {
				return nil, diag
			}
			list = append(list, v)
		}
		p.advance() // ]
		return list, nil
	case tokIdent:
		t, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		return ir.TypeAttr{Type: t}, nil
	default:
		return nil, p.errorf("expected attribute value, found %s", t)
	}
}

// parseType parses a type in assembly syntax.
func (p *parser) parseType() (types.Type, *ir.Diagnostic) {
	head, diag := p.expect(tokIdent, "type")
	if diag != nil {
		return nil, diag
	}
	switch head.text {
	case "uint":
		w, diag := p.parseOptionalWidth()
		if diag != nil {
			return nil, diag
		}
		return types.UInt{Width: w}, nil
	case "sint":
		w, diag := p.parseOptionalWidth()
		if diag != nil {
			return nil, diag
		}
		return types.SInt{Width: w}, nil
	case "int":
		w, diag := p.parseOptionalWidth()
		if diag != nil {
			return nil, diag
		}
		return types.Int{Width: w}, nil
	case "analog":
		w, diag := p.parseOptionalWidth()
		if diag != nil {
			return nil, diag
		}
		return types.Analog{Width: w}, nil
	case "clock":
		return types.Clock{}, nil
	case "reset":
		return types.Reset{}, nil
	case "asyncreset":
		return types.AsyncReset{}, nil
	case "vector":
		return p.parseVector()
	case "bundle":
		return p.parseBundle()
	case "inout":
		if _, diag := p.expect(tokLAngle, "'<'"); diag != nil {
			return nil, diag
		}
		elem, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		if _, diag := p.expect(tokRAngle, "'>'"); diag != nil {
			return nil, diag
		}
		return types.InOut{Elem: elem}, nil
	default:
		return nil, p.errorf("unknown type %q", head.text)
	}
}

// parseOptionalWidth parses the <N> suffix of an integer type; its
// absence means the width is unresolved.
func (p *parser) parseOptionalWidth() (int, *ir.Diagnostic) {
	if p.peek().kind != tokLAngle {
		return types.WidthUnknown, nil
	}
	p.advance()
	t, diag := p.expect(tokInt, "width")
	if diag != nil {
		return 0, diag
	}
	w, err := strconv.Atoi(t.text)
	if err != nil || w < 0 {
		return 0, p.errorf("bad width %q", t.text)
	}
	if _, diag := p.expect(tokRAngle, "'>'"); diag != nil {
		return 0, diag
	}
	return w, nil
}

func (p *parser) parseVector() (types.Type, *ir.Diagnostic) {
	if _, diag := p.expect(tokLAngle, "'<'"); diag != nil {
		return nil, diag
	}
	elem, diag := p.parseType()
	if diag != nil {
		return nil, diag
	}
	if _, diag := p.expect(tokComma, "','"); diag != nil {
		return nil, diag
	}
	t, diag := p.expect(tokInt, "vector size")
	if diag != nil {
		return nil, diag
	}
	size, err := strconv.Atoi(t.text)
	if err != nil || size < 0 {
		return nil, p.errorf("bad vector size %q", t.text)
	}
	if _, diag := p.expect(tokRAngle, "'>'"); diag != nil {
		return nil, diag
	}
	return types.Vector{Elem: elem, Size: size}, nil
}

func (p *parser) parseBundle() (types.Type, *ir.Diagnostic) {
	if _, diag := p.expect(tokLAngle, "'<'"); diag != nil {
		return nil, diag
	}
	var fields []types.Field
	for p.peek().kind != tokRAngle {
		if len(fields) > 0 {
			if _, diag := p.expect(tokComma, "','"); diag != nil {
				return nil, diag
			}
		}
		// "flip" is only a modifier when followed by a field name, so a
		// field itself named flip still parses.
		flip := false
		if t := p.peek(); t.kind == tokIdent && t.text == "flip" && p.toks[p.pos+1].kind == tokIdent {
			flip = true
			p.advance()
		}
		name, diag := p.expect(tokIdent, "field name")
		if diag != nil {
			return nil, diag
		}
		if _, diag := p.expect(tokColon, "':'"); diag != nil {
			return nil, diag
		}
		ft, diag := p.parseType()
		if diag != nil {
			return nil, diag
		}
		fields = append(fields, types.Field{Name: name.text, Type: ft, Flip: flip})
	}
	p.advance() // >
	return types.Bundle{Fields: fields}, nil
}
