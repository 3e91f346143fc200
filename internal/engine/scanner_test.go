// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []*Token {
	t.Helper()
	cfg := DefaultParseConfig()
	return scanAllWithConfig(t, &cfg, src)
}

func scanAllWithConfig(t *testing.T, cfg *ParseConfig, src string) []*Token {
	t.Helper()
	in := NewInputString("<test>", src)
	s := NewScanner(in, cfg)
	var toks []*Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok == nil {
			break
		}
		toks = append(toks, tok)
		if tok.Type == StreamEndToken {
			break
		}
	}
	return toks
}

// scanAllErr runs the scanner under cfg to completion (or first error) and
// returns that error, if any.
func scanAllErr(cfg *ParseConfig, src string) error {
	in := NewInputString("<test>", src)
	s := NewScanner(in, cfg)
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if tok == nil || tok.Type == StreamEndToken {
			return nil
		}
	}
}

func tokenTypes(toks []*Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestScannerFlowSequenceOfScalars(t *testing.T) {
	toks := scanAll(t, "[1, 2, 3]\n")
	types := tokenTypes(toks)
	assert.Equal(t, []TokenType{
		StreamStartToken,
		FlowSequenceStartToken,
		ScalarToken,
		FlowEntryToken,
		ScalarToken,
		FlowEntryToken,
		ScalarToken,
		FlowSequenceEndToken,
		StreamEndToken,
	}, types)
}

func TestScannerBlockMappingProducesKeyValueTokens(t *testing.T) {
	toks := scanAll(t, "a: 1\nb: 2\n")
	types := tokenTypes(toks)
	require.Contains(t, types, BlockMappingStartToken)
	require.Contains(t, types, KeyToken)
	require.Contains(t, types, ValueToken)
	require.Contains(t, types, BlockEndToken)
}

func TestScannerBlockSequence(t *testing.T) {
	toks := scanAll(t, "- a\n- b\n")
	types := tokenTypes(toks)
	assert.Equal(t, []TokenType{
		StreamStartToken,
		BlockSequenceStartToken,
		BlockEntryToken,
		ScalarToken,
		BlockEntryToken,
		ScalarToken,
		BlockEndToken,
		StreamEndToken,
	}, types)
}

func TestScannerAnchorAndAlias(t *testing.T) {
	toks := scanAll(t, "[&x 1, *x]\n")
	var anchor, alias *Token
	for _, tok := range toks {
		switch tok.Type {
		case AnchorToken:
			anchor = tok
		case AliasToken:
			alias = tok
		}
	}
	require.NotNil(t, anchor)
	require.NotNil(t, alias)
	assert.Equal(t, "x", string(anchor.Value))
	assert.Equal(t, "x", string(alias.Value))
}

func TestScannerSingleQuotedEscapedQuote(t *testing.T) {
	toks := scanAll(t, "'it''s'\n")
	var scalar *Token
	for _, tok := range toks {
		if tok.Type == ScalarToken {
			scalar = tok
			break
		}
	}
	require.NotNil(t, scalar)
	assert.Equal(t, "it's", string(scalar.Value))
	assert.Equal(t, SingleQuotedScalarStyle, scalar.Style)
}

func TestScannerDoubleQuotedEscape(t *testing.T) {
	toks := scanAll(t, "\"a\\nb\"\n")
	var scalar *Token
	for _, tok := range toks {
		if tok.Type == ScalarToken {
			scalar = tok
		}
	}
	require.NotNil(t, scalar)
	assert.Equal(t, "a\nb", string(scalar.Value))
}

func TestScannerLiteralBlockScalarPreservesNewlines(t *testing.T) {
	toks := scanAll(t, "|\n  line one\n  line two\n")
	var scalar *Token
	for _, tok := range toks {
		if tok.Type == ScalarToken {
			scalar = tok
		}
	}
	require.NotNil(t, scalar)
	assert.Equal(t, "line one\nline two\n", string(scalar.Value))
	assert.Equal(t, LiteralScalarStyle, scalar.Style)
}

func TestScannerFoldedBlockScalarFoldsSingleBreaks(t *testing.T) {
	toks := scanAll(t, ">\n  line one\n  line two\n")
	var scalar *Token
	for _, tok := range toks {
		if tok.Type == ScalarToken {
			scalar = tok
		}
	}
	require.NotNil(t, scalar)
	assert.Equal(t, "line one line two\n", string(scalar.Value))
}

func TestScannerVersionDirective(t *testing.T) {
	toks := scanAll(t, "%YAML 1.1\n---\n")
	var dir *Token
	for _, tok := range toks {
		if tok.Type == VersionDirectiveToken {
			dir = tok
		}
	}
	require.NotNil(t, dir)
	assert.EqualValues(t, 1, dir.VersionMajor)
	assert.EqualValues(t, 1, dir.VersionMinor)
}

func TestScannerDocumentIndicators(t *testing.T) {
	toks := scanAll(t, "---\na: 1\n...\n")
	types := tokenTypes(toks)
	assert.Contains(t, types, DocumentStartToken)
	assert.Contains(t, types, DocumentEndToken)
}

func TestScannerUnterminatedFlowScalarErrors(t *testing.T) {
	cfg := DefaultParseConfig()
	in := NewInputString("<test>", "\"abc")
	s := NewScanner(in, &cfg)
	var err error
	for {
		var tok *Token
		tok, err = s.Next()
		if err != nil || tok == nil {
			break
		}
	}
	require.Error(t, err)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestScannerInvalidStartCharacterErrors(t *testing.T) {
	cfg := DefaultParseConfig()
	in := NewInputString("<test>", "`bad")
	s := NewScanner(in, &cfg)
	_, err := s.Next() // StreamStartToken
	require.NoError(t, err)
	_, err = s.Next()
	require.Error(t, err)
}

func TestScannerJSONModeAcceptsFlowObjectAndLexemes(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	toks := scanAllWithConfig(t, &cfg, `{"a":1,"b":true,"c":null,"d":-1.5e2}`)
	types := tokenTypes(toks)
	assert.Contains(t, types, FlowMappingStartToken)
	assert.Contains(t, types, FlowMappingEndToken)
}

func TestScannerJSONModeRejectsDirective(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "%YAML 1.1\n---\n{}\n")
	require.Error(t, err)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestScannerJSONModeRejectsAnchor(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "[&x 1]\n")
	require.Error(t, err)
}

func TestScannerJSONModeRejectsTag(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "[!!str a]\n")
	require.Error(t, err)
}

func TestScannerJSONModeRejectsBlockSequence(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "- a\n- b\n")
	require.Error(t, err)
}

func TestScannerJSONModeRejectsBlockMapping(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	// "1" is a valid JSON lexeme, so this exercises the block-mapping
	// rejection in fetchValue rather than the plain-scalar lexeme check.
	err := scanAllErr(&cfg, "1: 2\n")
	require.Error(t, err)
}

func TestScannerJSONModeRejectsBlockScalar(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "|\n  a\n")
	require.Error(t, err)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestScannerJSONModeRejectsNonLexemePlainScalar(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := scanAllErr(&cfg, "[yes]\n")
	require.Error(t, err)
}

func TestJSONNumberLexemeAcceptsAndRejects(t *testing.T) {
	assert.True(t, isJSONNumberLexeme("0"))
	assert.True(t, isJSONNumberLexeme("-1.5e+10"))
	assert.True(t, isJSONNumberLexeme("3.14"))
	assert.False(t, isJSONNumberLexeme("01"))
	assert.False(t, isJSONNumberLexeme("1."))
	assert.False(t, isJSONNumberLexeme(""))
	assert.False(t, isJSONNumberLexeme("-"))
}
