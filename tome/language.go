// Package tome provides the tome grammar's lexical layer: the external
// scanner for string interpolation tokens, the language definition it
// plugs into, and a tokenizer for string literals.
package tome

import (
	"sync"

	"github.com/tomelang/tree-sitter-tome/sitter"
)

// Grammar symbols. Symbol 0 is the EOF sentinel.
const (
	symEOF            sitter.Symbol = 0
	symDoubleQuote    sitter.Symbol = 1
	symEscapeSequence sitter.Symbol = 2
	symStringContent  sitter.Symbol = 3
	symInterpStart    sitter.Symbol = 4
	symInterpEnd      sitter.Symbol = 5
	symString         sitter.Symbol = 6
	symInterpolation  sitter.Symbol = 7
)

// Lex modes, indexing Language().LexModes. The mode selects the DFA
// entry state for internal tokens and the valid-symbol set for the
// external scanner.
const (
	// ModeSource is the default mode outside any string literal; the
	// only token it recognizes is the opening quote.
	ModeSource uint16 = iota

	// ModeStringBody is the inside of a double-quoted string: content
	// runs and #{ come from the external scanner, the closing quote
	// and escape sequences from the DFA.
	ModeStringBody

	// ModeInterpolation is the inside of #{...}: only the closing }
	// is recognized, by the external scanner; the embedded expression
	// is not lexed at this layer.
	ModeInterpolation
)

// DFA state indices for the lex table below.
const (
	lexStateSource = 0
	lexStateQuote  = 1
	lexStateBody   = 2
	lexStateSlash  = 3
	lexStateEscape = 4
	lexStateInterp = 5
)

var (
	languageOnce sync.Once
	language     *sitter.Language
)

// Language returns the tome language definition. The table is built
// once per process and shared by every caller; treat it as read-only.
func Language() *sitter.Language {
	languageOnce.Do(func() {
		language = buildLanguage()
	})
	return language
}

func buildLanguage() *sitter.Language {
	return &sitter.Language{
		Name:    "tome",
		Version: sitter.LanguageVersion,

		SymbolCount:        8,
		TokenCount:         6,
		ExternalTokenCount: externalTokenCount,

		SymbolNames: []string{
			"end",
			"\"",
			"escape_sequence",
			"string_content",
			"#{",
			"}",
			"string",
			"interpolation",
		},
		SymbolMetadata: []sitter.SymbolMetadata{
			{Name: "end", Visible: false, Named: false},
			{Name: "\"", Visible: true, Named: false},
			{Name: "escape_sequence", Visible: true, Named: true},
			{Name: "string_content", Visible: true, Named: true},
			{Name: "#{", Visible: true, Named: false},
			{Name: "}", Visible: true, Named: false},
			{Name: "string", Visible: true, Named: true},
			{Name: "interpolation", Visible: true, Named: true},
		},

		LexModes: []sitter.LexMode{
			{LexState: lexStateSource, ExternalLexState: 0},
			{LexState: lexStateBody, ExternalLexState: 1},
			{LexState: lexStateInterp, ExternalLexState: 2},
		},
		LexStates: []sitter.LexState{
			// Source mode entry: only the opening quote.
			{Default: -1, EOF: -1, Transitions: []sitter.LexTransition{
				{Lo: '"', Hi: '"', NextState: lexStateQuote},
			}},
			// Quote accept.
			{AcceptToken: symDoubleQuote, Default: -1, EOF: -1},
			// String body entry: closing quote or escape.
			{Default: -1, EOF: -1, Transitions: []sitter.LexTransition{
				{Lo: '"', Hi: '"', NextState: lexStateQuote},
				{Lo: '\\', Hi: '\\', NextState: lexStateSlash},
			}},
			// Backslash seen: any single rune completes the escape.
			{Default: lexStateEscape, EOF: -1},
			// Escape accept.
			{AcceptToken: symEscapeSequence, Default: -1, EOF: -1},
			// Interpolation entry: nothing internal to lex.
			{Default: -1, EOF: -1},
		},

		ExternalSymbolMap: []sitter.Symbol{
			symStringContent,
			symInterpStart,
			symInterpEnd,
		},
		ExternalTokenSets: [][]bool{
			{false, false, false},
			{true, true, false},
			{false, false, true},
		},

		ExternalScanner: Scanner{},
	}
}
