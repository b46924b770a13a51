package sitter

import "testing"

func hybridTestLanguage() *Language {
	return &Language{
		Name:               "hybrid",
		Version:            LanguageVersion,
		TokenCount:         4,
		ExternalTokenCount: 2,
		SymbolNames:        []string{"end", "word", "open", "close"},
		LexStates: []LexState{
			{AcceptToken: 0, Default: -1, EOF: -1},
		},
		ExternalSymbolMap: []Symbol{2, 3},
		ExternalScanner:   &matchScanner{match: 'x'},
	}
}

func TestEvaluateLexSupportHybrid(t *testing.T) {
	report := EvaluateLexSupport(hybridTestLanguage())

	if report.Backend != LexBackendHybrid {
		t.Errorf("Backend = %q, want %q", report.Backend, LexBackendHybrid)
	}
	if !report.Supported() {
		t.Error("Supported = false, want true")
	}
	if report.Reason != "dfa lexer with external scanner" {
		t.Errorf("Reason = %q, want %q", report.Reason, "dfa lexer with external scanner")
	}
	if !report.HasDFALexer || !report.RequiresExternalScanner || !report.HasExternalScanner {
		t.Errorf("capability flags = (dfa %v, requires %v, has %v), want all true",
			report.HasDFALexer, report.RequiresExternalScanner, report.HasExternalScanner)
	}
	if !report.ExternalMapAligned {
		t.Error("ExternalMapAligned = false, want true")
	}
}

func TestEvaluateLexSupportDFAOnly(t *testing.T) {
	lang := hybridTestLanguage()
	lang.ExternalTokenCount = 0
	lang.ExternalSymbolMap = nil
	lang.ExternalScanner = nil

	report := EvaluateLexSupport(lang)
	if report.Backend != LexBackendDFA {
		t.Errorf("Backend = %q, want %q", report.Backend, LexBackendDFA)
	}
	if report.Reason != "dfa lexer" {
		t.Errorf("Reason = %q, want %q", report.Reason, "dfa lexer")
	}
	if report.RequiresExternalScanner {
		t.Error("RequiresExternalScanner = true, want false")
	}
}

func TestEvaluateLexSupportStaleVersion(t *testing.T) {
	lang := hybridTestLanguage()
	lang.Version = MinCompatibleLanguageVersion - 1

	report := EvaluateLexSupport(lang)
	if report.Supported() {
		t.Error("Supported = true, want false")
	}
	if report.VersionCompatible {
		t.Error("VersionCompatible = true, want false")
	}
	if report.Reason != "language version is incompatible with runtime" {
		t.Errorf("Reason = %q", report.Reason)
	}
}

func TestEvaluateLexSupportMissingLexStates(t *testing.T) {
	lang := hybridTestLanguage()
	lang.LexStates = nil

	report := EvaluateLexSupport(lang)
	if report.Supported() {
		t.Error("Supported = true, want false")
	}
	if report.Reason != "missing DFA lexer tables (LexStates)" {
		t.Errorf("Reason = %q", report.Reason)
	}
}

func TestEvaluateLexSupportMissingScanner(t *testing.T) {
	lang := hybridTestLanguage()
	lang.ExternalScanner = nil

	report := EvaluateLexSupport(lang)
	if report.Supported() {
		t.Error("Supported = true, want false")
	}
	if report.Reason != "requires external scanner, but none is registered" {
		t.Errorf("Reason = %q", report.Reason)
	}
	if !report.RequiresExternalScanner || report.HasExternalScanner {
		t.Errorf("scanner flags = (requires %v, has %v), want (true, false)",
			report.RequiresExternalScanner, report.HasExternalScanner)
	}
}

func TestEvaluateLexSupportMisalignedMap(t *testing.T) {
	// Map shorter than the external token count.
	lang := hybridTestLanguage()
	lang.ExternalSymbolMap = []Symbol{2}

	report := EvaluateLexSupport(lang)
	if report.Supported() {
		t.Error("short map: Supported = true, want false")
	}
	if report.Reason != "external symbol map does not cover the external token count" {
		t.Errorf("short map: Reason = %q", report.Reason)
	}

	// Map entry outside the terminal range.
	lang = hybridTestLanguage()
	lang.ExternalSymbolMap = []Symbol{2, Symbol(lang.TokenCount)}

	report = EvaluateLexSupport(lang)
	if report.Supported() {
		t.Error("nonterminal map entry: Supported = true, want false")
	}
	if report.ExternalMapAligned {
		t.Error("nonterminal map entry: ExternalMapAligned = true, want false")
	}
}
