package tome

import "github.com/tomelang/tree-sitter-tome/sitter"

// Scanner recognizes the context-sensitive string tokens the lex
// tables cannot express: content runs, #{, and }. It is stateless:
// every invocation decides from the cursor and the valid-symbol mask
// alone, so the lifecycle hooks are no-ops and serialized state is
// always empty.
type Scanner struct{}

// Create returns no payload; the scanner keeps no state between
// invocations.
func (Scanner) Create() any { return nil }

// Destroy is a no-op.
func (Scanner) Destroy(payload any) {}

// Serialize reports an empty state.
func (Scanner) Serialize(payload any, buf []byte) int { return 0 }

// Deserialize accepts any state, including none at all.
func (Scanner) Deserialize(payload any, buf []byte) {}

// Scan recognizes at most one token at the cursor position. The checks
// run in a fixed order: interpolation start, interpolation end, then a
// maximal content run. A false return means "no token here"; the
// enclosing engine treats that as an ordinary outcome, not an error.
func (Scanner) Scan(payload any, lexer *sitter.ExternalLexer, validSymbols []bool) bool {
	if valid(validSymbols, InterpolationStart) && lexer.Lookahead() == '#' {
		lexer.Advance(false)
		if lexer.Lookahead() != '{' {
			// The consumed # is uncommitted lookahead: without a
			// MarkEnd, no token boundary moves.
			return false
		}
		lexer.Advance(false)
		lexer.SetResultSymbol(InterpolationStart)
		return true
	}

	if valid(validSymbols, InterpolationEnd) && lexer.Lookahead() == '}' {
		lexer.Advance(false)
		lexer.SetResultSymbol(InterpolationEnd)
		return true
	}

	if valid(validSymbols, StringContent) {
		return scanContent(lexer)
	}

	return false
}

// scanContent consumes the longest run of plain characters. The run
// stops at the close quote, a backslash (escape sequences belong to
// the lex tables), end of input, or a live #{. The double quote is the
// sole terminator; apostrophes are ordinary content.
//
// A # needs one rune of lookahead: the end is marked before the probe,
// so when #{ follows, everything up to the # is the token and the
// probed bytes stay uncommitted. When { does not follow, the # is
// content and a later MarkEnd picks it up.
func scanContent(lexer *sitter.ExternalLexer) bool {
	hasContent := false
	for {
		if lexer.AtEnd() {
			break
		}
		r := lexer.Lookahead()
		if r == '"' || r == '\\' {
			break
		}
		if r == '#' {
			lexer.MarkEnd()
			lexer.Advance(false)
			if lexer.Lookahead() == '{' {
				if !hasContent {
					return false
				}
				lexer.SetResultSymbol(StringContent)
				return true
			}
			hasContent = true
			continue
		}
		hasContent = true
		lexer.Advance(false)
	}

	lexer.MarkEnd()
	if !hasContent {
		return false
	}
	lexer.SetResultSymbol(StringContent)
	return true
}

func valid(mask []bool, index int) bool {
	return index < len(mask) && mask[index]
}
