// Package sitter implements the lexical layer of a pure Go tree-sitter
// style runtime.
//
// This file defines the core data structures that mirror tree-sitter's
// TSLanguage C struct, trimmed to what tokenization needs: symbol
// tables, lexer DFA tables, and the external scanner hook. Parse
// tables are out of scope; this runtime lexes, it does not parse.
package sitter

// Symbol is a grammar symbol ID (terminal or nonterminal).
// Symbol 0 is reserved for the EOF sentinel.
type Symbol uint16

// Language ABI versions, matching tree-sitter's language versioning.
// A Language whose Version falls outside the compatible range cannot
// be driven by this runtime.
const (
	LanguageVersion              = 14
	MinCompatibleLanguageVersion = 13
)

// LexState is one state in the table-driven lexer DFA.
type LexState struct {
	AcceptToken Symbol // 0 if this state doesn't accept
	Skip        bool   // true if accepted chars are whitespace
	Transitions []LexTransition
	Default     int // default next state (-1 if none)
	EOF         int // state on EOF (-1 if none)
}

// LexTransition maps a character range to a next state.
type LexTransition struct {
	Lo, Hi    rune // inclusive character range
	NextState int
}

// LexMode maps a grammar lex mode to its lexer configuration: the DFA
// entry state for internal tokens and the index of the valid-symbol
// set for external tokens.
type LexMode struct {
	LexState         uint16
	ExternalLexState uint16
}

// SymbolMetadata holds display information about a symbol.
type SymbolMetadata struct {
	Name      string
	Visible   bool
	Named     bool
	Supertype bool
}

// ExternalScanner is the interface for language-specific external
// scanners: hand-written lexing logic for tokens that context-free lex
// tables cannot express (string interpolation, indent tracking,
// heredocs).
//
// Create may return nil for stateless scanners; Destroy, Serialize,
// and Deserialize are then no-ops. Serialize reports how many bytes of
// state it wrote and must write at most StateBufferSize. Deserialize
// must accept an empty or nil buffer as the initial state.
//
// Scan reads from the lexer cursor and returns whether it recognized a
// token; on success it has set the token's external index through
// SetResultSymbol. The validSymbols mask is indexed by external token
// index, is rebuilt by the engine for every invocation, and must not
// be retained or mutated.
type ExternalScanner interface {
	Create() any
	Destroy(payload any)
	Serialize(payload any, buf []byte) int
	Deserialize(payload any, buf []byte)
	Scan(payload any, lexer *ExternalLexer, validSymbols []bool) bool
}

// Language holds all data needed to tokenize a specific language.
// It mirrors the lexical half of tree-sitter's TSLanguage C struct,
// translated into idiomatic Go types with slice-based tables instead
// of raw pointers.
type Language struct {
	Name    string
	Version uint32

	// Counts
	SymbolCount        uint32
	TokenCount         uint32
	ExternalTokenCount uint32

	// Symbol metadata
	SymbolNames    []string
	SymbolMetadata []SymbolMetadata

	// Lex tables
	LexModes  []LexMode
	LexStates []LexState

	// ExternalSymbolMap translates external token indices into grammar
	// symbols, in the grammar's external token order.
	ExternalSymbolMap []Symbol

	// ExternalTokenSets holds one valid-symbol template per
	// LexMode.ExternalLexState value, indexed by external token index.
	ExternalTokenSets [][]bool

	// External scanner (nil if not needed)
	ExternalScanner ExternalScanner
}

// CompatibleWithRuntime reports whether the language's ABI version can
// be driven by this runtime.
func (l *Language) CompatibleWithRuntime() bool {
	return l.Version >= MinCompatibleLanguageVersion && l.Version <= LanguageVersion
}

// SymbolName returns the display name for a symbol, or "" when the
// symbol is out of range.
func (l *Language) SymbolName(sym Symbol) string {
	if int(sym) >= len(l.SymbolNames) {
		return ""
	}
	return l.SymbolNames[sym]
}

// IsNamed reports whether a symbol is a named node kind. Metadata wins
// when present; without it, a name counts as named when it looks like
// an identifier rather than punctuation.
func (l *Language) IsNamed(sym Symbol) bool {
	if int(sym) < len(l.SymbolMetadata) {
		return l.SymbolMetadata[sym].Named
	}
	name := l.SymbolName(sym)
	if name == "" {
		return false
	}
	b := name[0]
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SymbolByName returns the first symbol with the given display name.
func (l *Language) SymbolByName(name string) (Symbol, bool) {
	for i, n := range l.SymbolNames {
		if n == name {
			return Symbol(i), true
		}
	}
	return 0, false
}

// TokenSymbolsByName returns every terminal symbol with the given
// display name, in symbol order. Grammars reuse display names across
// terminals, so callers that need a token must filter on TokenCount
// rather than take the first global match.
func (l *Language) TokenSymbolsByName(name string) []Symbol {
	limit := int(l.TokenCount)
	if limit > len(l.SymbolNames) {
		limit = len(l.SymbolNames)
	}
	var syms []Symbol
	for i := 0; i < limit; i++ {
		if l.SymbolNames[i] == name {
			syms = append(syms, Symbol(i))
		}
	}
	return syms
}

// ExternalSymbolFor maps an external token index to its grammar
// symbol.
func (l *Language) ExternalSymbolFor(index int) (Symbol, bool) {
	if index < 0 || index >= len(l.ExternalSymbolMap) {
		return 0, false
	}
	return l.ExternalSymbolMap[index], true
}

// ValidSymbols returns a fresh valid-symbol mask for the given
// external set index. The engine hands the mask to the external
// scanner on every invocation, so it is always a copy: scanners and
// callers may not rely on it being shared or stable across calls. An
// out-of-range index yields an all-false mask.
func (l *Language) ValidSymbols(setIndex int) []bool {
	mask := make([]bool, l.ExternalTokenCount)
	if setIndex < 0 || setIndex >= len(l.ExternalTokenSets) {
		return mask
	}
	copy(mask, l.ExternalTokenSets[setIndex])
	return mask
}
