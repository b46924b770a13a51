package tome

import (
	"fmt"
	"unicode/utf8"

	"github.com/tomelang/tree-sitter-tome/sitter"
)

// sourceCursor tracks byte offset and row/column while scanning source
// bytes.
type sourceCursor struct {
	src    []byte
	offset int
	row    uint32
	col    uint32
}

func newSourceCursor(src []byte) sourceCursor {
	return sourceCursor{src: src}
}

func (c *sourceCursor) eof() bool {
	return c.offset >= len(c.src)
}

func (c *sourceCursor) point() sitter.Point {
	return sitter.Point{Row: c.row, Column: c.col}
}

func (c *sourceCursor) peekByte() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.offset]
}

func (c *sourceCursor) advanceRune() {
	if c.eof() {
		return
	}
	r, size := utf8.DecodeRune(c.src[c.offset:])
	c.offset += size
	if r == '\n' {
		c.row++
		c.col = 0
		return
	}
	c.col++
}

// seek jumps to a position already known to the caller, typically a
// committed token end reported by one of the lexers.
func (c *sourceCursor) seek(offset int, pt sitter.Point) {
	c.offset = offset
	c.row = pt.Row
	c.col = pt.Column
}

// tokenLookup resolves token symbols by display name, collecting the
// first failure instead of forcing callers to check every lookup.
type tokenLookup struct {
	lang      *sitter.Language
	lexerName string
	firstErr  error
}

func newTokenLookup(lang *sitter.Language, lexerName string) *tokenLookup {
	return &tokenLookup{lang: lang, lexerName: lexerName}
}

func (tl *tokenLookup) require(name string) sitter.Symbol {
	syms := tl.lang.TokenSymbolsByName(name)
	if len(syms) == 0 {
		if tl.firstErr == nil {
			tl.firstErr = fmt.Errorf("%s lexer: token symbol %q not found", tl.lexerName, name)
		}
		return 0
	}
	return syms[0]
}

func (tl *tokenLookup) err() error {
	return tl.firstErr
}
