// Package schema reflects table structure from Athena catalog queries and
// SHOW CREATE TABLE output.
package schema

// Type is the toolkit-side descriptor a column type maps to.
// The zero value is Null, the untyped sentinel.
type Type int

const (
	Null Type = iota
	BigInt
	Binary
	Boolean
	Date
	Decimal
	Float
	Integer
	String
	Timestamp
)

var typeNames = [...]string{
	Null:      "NULL",
	BigInt:    "BIGINT",
	Binary:    "BINARY",
	Boolean:   "BOOLEAN",
	Date:      "DATE",
	Decimal:   "DECIMAL",
	Float:     "FLOAT",
	Integer:   "INTEGER",
	String:    "STRING",
	Timestamp: "TIMESTAMP",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Null]
	}
	return typeNames[t]
}

// MarshalText renders the descriptor name, so YAML and JSON output read
// as type names rather than ordinals.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// typeMappings is keyed by the uppercase base token. Complex types
// (ARRAY, ROW, STRUCT, MAP) are flattened to String.
var typeMappings = map[string]Type{
	"DOUBLE":    Float,
	"SMALLINT":  Integer,
	"BOOLEAN":   Boolean,
	"INTEGER":   Integer,
	"VARCHAR":   String,
	"TINYINT":   Integer,
	"DECIMAL":   Decimal,
	"ARRAY":     String,
	"ROW":       String,
	"VARBINARY": Binary,
	"MAP":       String,
	"BIGINT":    BigInt,
	"DATE":      Date,
	"TIMESTAMP": Timestamp,
	"STRING":    String,

	// Hive spellings
	"INT":    Integer,
	"FLOAT":  Float,
	"STRUCT": String,
	"BINARY": Binary,
}

// ResolveType maps an uppercase type token to its descriptor. Parameters
// are ignored (DECIMAL(10,2) resolves as DECIMAL, ARRAY<STRING> as ARRAY).
// Unknown tokens resolve to Null.
func ResolveType(token string) Type {
	return typeMappings[baseTypeName(token)]
}

// baseTypeName returns the leading run of letters of token.
func baseTypeName(token string) string {
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return token[:i]
		}
	}
	return token
}
