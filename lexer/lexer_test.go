package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clou/clouerr"
	"clou/token"
)

func allTokens(source string) []token.Token {
	l := New(source)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.END_OF_FILE {
			return toks
		}
	}
}

func TestLexerBasicExpression(t *testing.T) {
	toks := allTokens("let r = (5+3)*2/(1+1);")
	kinds := make([]token.TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.TokenKind{
		token.LET, token.IDENTIFIER, token.EQUAL, token.LEFT_PAREN,
		token.NUMBER, token.PLUS, token.NUMBER, token.RIGHT_PAREN,
		token.STAR, token.NUMBER, token.SLASH, token.LEFT_PAREN,
		token.NUMBER, token.PLUS, token.NUMBER, token.RIGHT_PAREN,
		token.SEMICOLON, token.END_OF_FILE,
	}, kinds)
}

func TestLexerNumberLiteral(t *testing.T) {
	toks := allTokens("3.14159")
	require.Len(t, toks, 2)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, 3.14159, toks[0].Literal)
}

func TestLexerStringKeepsBackslashesVerbatim(t *testing.T) {
	toks := allTokens(`"a\nb"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, `a\nb`, toks[0].Literal)
}

func TestLexerUnterminatedStringPanicsLexError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		lexErr, ok := r.(*clouerr.LexError)
		require.True(t, ok)
		assert.Contains(t, lexErr.Message, "Unterminated string")
	}()
	allTokens(`"never closed`)
}

func TestLexerCaretIsExponentNotBitwise(t *testing.T) {
	toks := allTokens("2^3")
	require.Len(t, toks, 4)
	assert.Equal(t, token.CARET, toks[1].Kind)
}

func TestLexerSkipsLineAndBlockComments(t *testing.T) {
	toks := allTokens("let x = 1; // trailing\n/* block */ let y = 2;")
	var kinds []token.TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.TokenKind{
		token.LET, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.LET, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.END_OF_FILE,
	}, kinds)
}

func TestLexerNotKeywordLexes(t *testing.T) {
	toks := allTokens("not x")
	require.Len(t, toks, 3)
	assert.Equal(t, token.NOT, toks[0].Kind)
}
