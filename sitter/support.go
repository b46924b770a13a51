package sitter

// LexBackend describes how a language's tokens can be produced by this
// runtime.
type LexBackend string

const (
	LexBackendUnsupported LexBackend = "unsupported"
	LexBackendDFA         LexBackend = "dfa"
	LexBackendHybrid      LexBackend = "hybrid"
)

// LexSupport summarizes tokenization support status for one language.
type LexSupport struct {
	Name                    string
	LanguageVersion         uint32
	VersionCompatible       bool
	Backend                 LexBackend
	Reason                  string
	HasDFALexer             bool
	RequiresExternalScanner bool
	HasExternalScanner      bool
	ExternalMapAligned      bool
}

// Supported reports whether the language can be tokenized at all.
func (s LexSupport) Supported() bool {
	return s.Backend != LexBackendUnsupported
}

// EvaluateLexSupport reports whether a language can be tokenized using
// the built-in DFA lexer, alone or together with its external scanner.
func EvaluateLexSupport(lang *Language) LexSupport {
	report := LexSupport{
		Name:                    lang.Name,
		LanguageVersion:         lang.Version,
		VersionCompatible:       lang.CompatibleWithRuntime(),
		HasDFALexer:             len(lang.LexStates) > 0,
		RequiresExternalScanner: lang.ExternalTokenCount > 0,
		HasExternalScanner:      lang.ExternalScanner != nil,
		ExternalMapAligned:      externalMapAligned(lang),
		Backend:                 LexBackendUnsupported,
	}

	if !report.VersionCompatible {
		report.Reason = "language version is incompatible with runtime"
		return report
	}

	if !report.HasDFALexer {
		report.Reason = "missing DFA lexer tables (LexStates)"
		return report
	}

	if report.RequiresExternalScanner && !report.HasExternalScanner {
		report.Reason = "requires external scanner, but none is registered"
		return report
	}

	if report.RequiresExternalScanner && !report.ExternalMapAligned {
		report.Reason = "external symbol map does not cover the external token count"
		return report
	}

	if report.RequiresExternalScanner {
		report.Backend = LexBackendHybrid
		report.Reason = "dfa lexer with external scanner"
		return report
	}

	report.Backend = LexBackendDFA
	report.Reason = "dfa lexer"
	return report
}

func externalMapAligned(lang *Language) bool {
	if lang.ExternalTokenCount == 0 {
		return true
	}
	if len(lang.ExternalSymbolMap) != int(lang.ExternalTokenCount) {
		return false
	}
	for _, sym := range lang.ExternalSymbolMap {
		if uint32(sym) >= lang.TokenCount {
			return false
		}
	}
	return true
}
