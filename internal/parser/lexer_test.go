package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.kind
	}
	return out
}

func TestLexer_Statement(t *testing.T) {
	toks := newLexer(`%0 = firrtl.add %a, %b : uint<9>`).lex()
	assert.Equal(t, []tokenKind{
		tokValue, tokEq, tokIdent, tokDot, tokIdent,
		tokValue, tokComma, tokValue, tokColon,
		tokIdent, tokLAngle, tokInt, tokRAngle, tokEOF,
	}, kinds(toks))
	assert.Equal(t, "0", toks[0].text)
	assert.Equal(t, "add", toks[4].text)
}

func TestLexer_CommentsAndLines(t *testing.T) {
	toks := newLexer("graph // trailing\n// whole line\n@adder").lex()
	require.Len(t, toks, 3)
	assert.Equal(t, tokIdent, toks[0].kind)
	assert.Equal(t, tokSymbol, toks[1].kind)
	assert.Equal(t, "adder", toks[1].text)
	assert.Equal(t, 3, toks[1].line)
}

func TestLexer_Literals(t *testing.T) {
	toks := newLexer(`{value = -17, name = "out"}`).lex()
	assert.Equal(t, tokInt, toks[3].kind)
	assert.Equal(t, "-17", toks[3].text)
	assert.Equal(t, tokString, toks[7].kind)
	assert.Equal(t, "out", toks[7].text)
}

func TestLexer_BadInput(t *testing.T) {
	toks := newLexer("%a ; %b").lex()
	last := toks[len(toks)-1]
	assert.Equal(t, tokError, last.kind)
	assert.Equal(t, ";", last.text)

	toks = newLexer(`"unterminated`).lex()
	assert.Equal(t, tokError, toks[0].kind)
}
