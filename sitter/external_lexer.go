package sitter

import "unicode/utf8"

// ExternalLexer is the scanner-facing cursor API handed to external
// scanners. It mirrors the essential tree-sitter scanner API:
// lookahead, advance, mark_end, and result_symbol.
//
// The cursor distinguishes the read position from the committed token
// end. Advancing moves only the read position; MarkEnd commits it.
// Anything read past the last committed end is lookahead the engine
// will rescan, so a scanner that probes ahead and fails leaves the
// token boundary where it was.
type ExternalLexer struct {
	source []byte

	startPos int
	pos      int
	endPos   int

	startPoint Point
	point      Point
	endPoint   Point

	resultSymbol Symbol
	hasResult    bool
	marked       bool
}

// NewExternalLexer creates a cursor over source positioned at the
// given byte offset and point.
func NewExternalLexer(source []byte, pos int, pt Point) *ExternalLexer {
	return &ExternalLexer{
		source:     source,
		startPos:   pos,
		pos:        pos,
		endPos:     pos,
		startPoint: pt,
		point:      pt,
		endPoint:   pt,
	}
}

// Lookahead returns the current rune or 0 at EOF.
func (l *ExternalLexer) Lookahead() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.source[l.pos:])
	return r
}

// AtEnd reports whether the read position is at the end of input.
func (l *ExternalLexer) AtEnd() bool {
	return l.pos >= len(l.source)
}

// Advance consumes one rune. When skip is true, consumed bytes are
// excluded from the token span (scanner whitespace skipping behavior).
func (l *ExternalLexer) Advance(skip bool) {
	if l.pos >= len(l.source) {
		return
	}

	r, size := utf8.DecodeRune(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.point.Row++
		l.point.Column = 0
	} else {
		l.point.Column++
	}

	if skip {
		l.startPos = l.pos
		l.startPoint = l.point
		l.endPos = l.pos
		l.endPoint = l.point
	}
}

// MarkEnd commits the current read position as the token end. Later
// advances extend the token only if MarkEnd is called again.
func (l *ExternalLexer) MarkEnd() {
	l.endPos = l.pos
	l.endPoint = l.point
	l.marked = true
}

// SetResultSymbol sets the token symbol to emit when Scan returns
// true. External scanners report the external token index here; the
// engine maps it to a grammar symbol.
func (l *ExternalLexer) SetResultSymbol(sym Symbol) {
	l.resultSymbol = sym
	l.hasResult = true
}

// GetColumn returns the current column (0-based) at the read position.
func (l *ExternalLexer) GetColumn() uint32 {
	return l.point.Column
}

// Token returns the committed token, if any. A token exists once a
// result symbol has been set. Its end is the last MarkEnd position;
// when MarkEnd was never called the token ends at the current read
// position, the way tree-sitter marks on the scanner's behalf after a
// successful scan.
func (l *ExternalLexer) Token() (Token, bool) {
	if !l.hasResult {
		return Token{}, false
	}

	endPos := l.endPos
	endPoint := l.endPoint
	if !l.marked {
		endPos = l.pos
		endPoint = l.point
	}
	if endPos < l.startPos {
		return Token{}, false
	}

	return Token{
		Symbol:     l.resultSymbol,
		Text:       string(l.source[l.startPos:endPos]),
		StartByte:  uint32(l.startPos),
		EndByte:    uint32(endPos),
		StartPoint: l.startPoint,
		EndPoint:   endPoint,
	}, true
}
