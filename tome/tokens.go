package tome

// External token indices, in the grammar's external token order. They
// index the valid-symbol mask handed to Scan and the language's
// ExternalSymbolMap. The numeric values are wire-stable: they must
// only change together with the grammar's external token list.
const (
	// StringContent is a maximal run of plain characters inside a
	// double-quoted string.
	StringContent = 0

	// InterpolationStart is the two-character sequence #{ opening an
	// interpolation.
	InterpolationStart = 1

	// InterpolationEnd is the } closing an interpolation.
	InterpolationEnd = 2

	externalTokenCount = 3
)
