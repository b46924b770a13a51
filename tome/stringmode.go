package tome

import (
	"errors"
	"fmt"

	"github.com/tomelang/tree-sitter-tome/sitter"
)

// ErrUnterminated reports a literal whose input ended before the
// closing quote.
var ErrUnterminated = errors.New("string literal is unterminated")

// StringTokenizer lexes one tome string literal: the opening quote,
// content runs, escape sequences, interpolation delimiters, and the
// closing quote. It plays the enclosing engine's role for the external
// scanner: it owns the lex mode, rebuilds the valid-symbol mask for
// every invocation, restores scanner state before each scan, and falls
// back to the DFA tables for the internal tokens.
//
// Interpolation nesting lives here, not in the scanner: the mask
// offers InterpolationEnd only while the brace depth is zero, so the
// scanner itself stays stateless.
type StringTokenizer struct {
	src  []byte
	lang *sitter.Language
	lex  *sitter.Lexer
	cur  sourceCursor

	mode       uint16
	braceDepth int

	payload   any
	lastState sitter.ExternalScannerState

	done         bool
	unterminated bool
	closed       bool

	quoteSymbol    sitter.Symbol
	interpStartSym sitter.Symbol
	interpEndSym   sitter.Symbol
}

// NewStringTokenizer creates a tokenizer for one string literal. The
// language must carry lex tables, the string lex modes, and an
// external scanner.
func NewStringTokenizer(src []byte, lang *sitter.Language) (*StringTokenizer, error) {
	if lang == nil {
		return nil, errors.New("tome string lexer: language is nil")
	}
	if lang.ExternalScanner == nil {
		return nil, errors.New("tome string lexer: language has no external scanner")
	}
	if !lang.CompatibleWithRuntime() {
		return nil, fmt.Errorf("tome string lexer: language version %d is incompatible with this runtime", lang.Version)
	}
	if len(lang.LexStates) == 0 {
		return nil, errors.New("tome string lexer: language is missing lex tables")
	}
	if len(lang.LexModes) <= int(ModeInterpolation) {
		return nil, errors.New("tome string lexer: language is missing string lex modes")
	}

	ts := &StringTokenizer{
		src:  src,
		lang: lang,
		lex:  sitter.NewLexer(lang.LexStates, src),
		cur:  newSourceCursor(src),
		mode: ModeSource,
	}

	tl := newTokenLookup(lang, "tome string")
	ts.quoteSymbol = tl.require("\"")
	if err := tl.err(); err != nil {
		return nil, err
	}

	var ok bool
	if ts.interpStartSym, ok = lang.ExternalSymbolFor(InterpolationStart); !ok {
		return nil, errors.New("tome string lexer: external symbol map is missing #{")
	}
	if ts.interpEndSym, ok = lang.ExternalSymbolFor(InterpolationEnd); !ok {
		return nil, errors.New("tome string lexer: external symbol map is missing }")
	}

	ts.payload = lang.ExternalScanner.Create()
	return ts, nil
}

// Next returns the next token of the literal, or the EOF token
// (Symbol 0) once the literal or the input is exhausted. Runes no
// table recognizes are skipped, one at a time.
func (t *StringTokenizer) Next() sitter.Token {
	for !t.done {
		if t.cur.eof() {
			if t.mode != ModeSource {
				t.unterminated = true
			}
			t.done = true
			break
		}

		lm := t.lang.LexModes[t.mode]

		// External set 0 is the empty set; the scanner only runs when
		// the mode offers it something.
		if lm.ExternalLexState != 0 {
			if tok, ok := t.externalToken(lm); ok {
				return tok
			}
		}
		if tok, ok := t.internalToken(lm); ok {
			return tok
		}
		t.recoverRune()
	}
	return t.eofToken()
}

func (t *StringTokenizer) externalToken(lm sitter.LexMode) (sitter.Token, bool) {
	mask := t.lang.ValidSymbols(int(lm.ExternalLexState))
	if t.mode == ModeInterpolation && t.braceDepth > 0 && InterpolationEnd < len(mask) {
		// The } belongs to the embedded expression until the nesting
		// depth drains back to zero.
		mask[InterpolationEnd] = false
	}

	sitter.RestoreScannerState(t.lang, t.payload, t.lastState)
	lexer := sitter.NewExternalLexer(t.src, t.cur.offset, t.cur.point())
	if !sitter.RunExternalScanner(t.lang, t.payload, lexer, mask) {
		return sitter.Token{}, false
	}
	tok, ok := lexer.Token()
	if !ok || int(tok.EndByte) <= t.cur.offset {
		// Success without progress would wedge the driver; treat it as
		// no token.
		return sitter.Token{}, false
	}

	sym, ok := t.lang.ExternalSymbolFor(int(tok.Symbol))
	if !ok {
		return sitter.Token{}, false
	}
	tok.Symbol = sym

	t.cur.seek(int(tok.EndByte), tok.EndPoint)
	t.lastState = sitter.CaptureScannerState(t.lang, t.payload)

	switch sym {
	case t.interpStartSym:
		t.mode = ModeInterpolation
		t.braceDepth = 0
	case t.interpEndSym:
		t.mode = ModeStringBody
	}
	return tok, true
}

func (t *StringTokenizer) internalToken(lm sitter.LexMode) (sitter.Token, bool) {
	t.lex.Seek(t.cur.offset, t.cur.point())
	tok, ok := t.lex.ScanToken(lm.LexState)
	if !ok {
		return sitter.Token{}, false
	}
	t.cur.seek(int(tok.EndByte), tok.EndPoint)

	if tok.Symbol == t.quoteSymbol {
		if t.mode == ModeSource {
			t.mode = ModeStringBody
		} else {
			// Closing quote: the literal is complete.
			t.mode = ModeSource
			t.done = true
		}
	}
	return tok, true
}

// recoverRune consumes one rune that no table matched. Inside an
// interpolation, unmasked braces belong to the embedded expression and
// adjust the nesting depth.
func (t *StringTokenizer) recoverRune() {
	if t.mode == ModeInterpolation {
		switch t.cur.peekByte() {
		case '{':
			t.braceDepth++
		case '}':
			if t.braceDepth > 0 {
				t.braceDepth--
			}
		}
	}
	t.cur.advanceRune()
}

func (t *StringTokenizer) eofToken() sitter.Token {
	pt := t.cur.point()
	return sitter.Token{
		Symbol:     symEOF,
		StartByte:  uint32(t.cur.offset),
		EndByte:    uint32(t.cur.offset),
		StartPoint: pt,
		EndPoint:   pt,
	}
}

// Unterminated reports whether input ended inside the literal, before
// its closing quote.
func (t *StringTokenizer) Unterminated() bool {
	return t.unterminated
}

// ScannerState returns the external scanner state captured after the
// most recent external token. The tome scanner is stateless, so the
// state is always empty; the accessor exists so callers can persist
// and restore it the way an incremental engine would.
func (t *StringTokenizer) ScannerState() sitter.ExternalScannerState {
	return t.lastState
}

// Close releases the external scanner payload. The tokenizer must not
// be used afterwards.
func (t *StringTokenizer) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.lang.ExternalScanner.Destroy(t.payload)
}

// Tokenize lexes one string literal from src with the tome language,
// returning every token through the closing quote. The stream is still
// returned when the literal never closes; ErrUnterminated reports that
// case.
func Tokenize(src []byte) ([]sitter.Token, error) {
	ts, err := NewStringTokenizer(src, Language())
	if err != nil {
		return nil, err
	}
	defer ts.Close()

	var toks []sitter.Token
	for {
		tok := ts.Next()
		if tok.Symbol == symEOF {
			break
		}
		toks = append(toks, tok)
	}
	if ts.Unterminated() {
		return toks, ErrUnterminated
	}
	return toks, nil
}
