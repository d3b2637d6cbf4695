package schema

// Column is one reflected column. Nullable and Default are always nil:
// the DDL text carries neither.
type Column struct {
	Name            string
	Type            Type
	RawType         string
	OrdinalPosition int
	Comment         *string
	Nullable        *bool
	Default         *string
}

// ColumnDefinition is what a single DDL line yields before type mapping.
type ColumnDefinition struct {
	Name    string
	RawType string
	Comment *string
}

// ForeignKey describes a referencing column.
type ForeignKey struct {
	Name      string
	Column    string
	RefSchema string
	RefTable  string
	RefColumn string
}

// Index describes a secondary index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}
