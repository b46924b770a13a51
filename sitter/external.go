package sitter

// StateBufferSize is the fixed size of the serialization buffer handed
// to external scanners, matching tree-sitter's
// TREE_SITTER_SERIALIZATION_BUFFER_SIZE.
const StateBufferSize = 1024

// ExternalScannerState holds serialized state for an external scanner
// between scan runs. For stateless scanners it is empty.
type ExternalScannerState struct {
	Data []byte
}

// RunExternalScanner invokes the language's external scanner if
// present. Returns true if the scanner produced a token, false
// otherwise.
func RunExternalScanner(lang *Language, payload any, lexer *ExternalLexer, validSymbols []bool) bool {
	if lang.ExternalScanner == nil {
		return false
	}
	return lang.ExternalScanner.Scan(payload, lexer, validSymbols)
}

// CaptureScannerState serializes the external scanner's state through
// the fixed-size buffer. A scanner that reports more than
// StateBufferSize bytes is clamped to the buffer.
func CaptureScannerState(lang *Language, payload any) ExternalScannerState {
	if lang.ExternalScanner == nil {
		return ExternalScannerState{}
	}
	buf := make([]byte, StateBufferSize)
	n := lang.ExternalScanner.Serialize(payload, buf)
	if n <= 0 {
		return ExternalScannerState{}
	}
	if n > len(buf) {
		n = len(buf)
	}
	return ExternalScannerState{Data: append([]byte(nil), buf[:n]...)}
}

// RestoreScannerState hands previously captured state back to the
// scanner. An empty or absent state is valid: scanners treat it as
// their initial state.
func RestoreScannerState(lang *Language, payload any, st ExternalScannerState) {
	if lang.ExternalScanner == nil {
		return
	}
	lang.ExternalScanner.Deserialize(payload, st.Data)
}
