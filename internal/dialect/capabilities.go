package dialect

// Capabilities is the fixed feature set of an engine. It is built once
// with the dialect and handed out by value.
type Capabilities struct {
	SupportsAlter             bool
	SupportsPKAutoincrement   bool
	SupportsDefaultValues     bool
	SupportsEmptyInsert       bool
	SupportsTransactions      bool
	SupportsUnicodeStatements bool
	SupportsUnicodeBinds      bool
	ReturnsUnicodeStrings     bool
	SupportsNativeBoolean     bool

	// DescriptionEncoding is empty when result descriptions need no decoding.
	DescriptionEncoding string
}

func athenaCapabilities() Capabilities {
	return Capabilities{
		SupportsAlter:             false,
		SupportsPKAutoincrement:   false,
		SupportsDefaultValues:     false,
		SupportsEmptyInsert:       false,
		SupportsTransactions:      false,
		SupportsUnicodeStatements: true,
		SupportsUnicodeBinds:      true,
		ReturnsUnicodeStrings:     true,
		SupportsNativeBoolean:     true,
	}
}
