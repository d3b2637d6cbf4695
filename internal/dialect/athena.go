package dialect

import (
	"context"

	"github.com/rs/zerolog"

	"athena-dialect/internal/conn"
	"athena-dialect/internal/schema"
)

const (
	athenaDialectName = "awsathena"
	athenaDriverName  = "jdbc"
)

// athenaFunctions maps toolkit function names to Athena's.
var athenaFunctions = map[string]string{
	"char_length": "length",
}

// AthenaDialect reflects Athena tables through information_schema and
// SHOW CREATE TABLE. Athena has no transactions, keys, indexes or defaults.
type AthenaDialect struct {
	caps     Capabilities
	catalog  *schema.Catalog
	preparer *IdentifierPreparer
	compiler *Compiler
	logger   zerolog.Logger
}

// NewAthenaDialect creates the Athena dialect.
func NewAthenaDialect(logger zerolog.Logger) *AthenaDialect {
	return &AthenaDialect{
		caps:     athenaCapabilities(),
		catalog:  schema.NewCatalog(logger),
		preparer: NewIdentifierPreparer(UniversalSet{}),
		compiler: NewCompiler(athenaFunctions),
		logger:   logger.With().Str("component", "athena-dialect").Logger(),
	}
}

func (d *AthenaDialect) Name() string                  { return athenaDialectName }
func (d *AthenaDialect) Driver() string                { return athenaDriverName }
func (d *AthenaDialect) Capabilities() Capabilities    { return d.caps }
func (d *AthenaDialect) Preparer() *IdentifierPreparer { return d.preparer }
func (d *AthenaDialect) Compiler() *Compiler           { return d.compiler }

func (d *AthenaDialect) CreateConnectArgs(rawURL string) (*ConnectionOptions, error) {
	return ParseConnectionURL(rawURL)
}

func (d *AthenaDialect) DefaultSchemaName(c conn.Connection) string {
	return schema.EffectiveSchema(c, "")
}

func (d *AthenaDialect) GetSchemaNames(ctx context.Context, c conn.Connection) ([]string, error) {
	return d.catalog.SchemaNames(ctx, c)
}

func (d *AthenaDialect) GetTableNames(ctx context.Context, c conn.Connection, schemaName string) ([]string, error) {
	return d.catalog.TableNames(ctx, c, schemaName)
}

func (d *AthenaDialect) HasTable(ctx context.Context, c conn.Connection, table, schemaName string) (bool, error) {
	return d.catalog.TableExists(ctx, c, table, schemaName)
}

// GetColumns parses SHOW CREATE TABLE output. Ordinals count only the
// lines that parse as columns.
func (d *AthenaDialect) GetColumns(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.Column, error) {
	lines, err := d.catalog.CreateTableLines(ctx, c, table, schemaName)
	if err != nil {
		return nil, err
	}

	columns := []schema.Column{}
	for _, line := range lines {
		def, ok := schema.ParseColumnLine(line)
		if !ok {
			d.logger.Trace().Str("table", table).Str("line", line).Msg("skipping non-column line")
			continue
		}

		typ := schema.ResolveType(def.RawType)
		if typ == schema.Null {
			d.logger.Debug().Str("table", table).Str("column", def.Name).Str("type", def.RawType).Msg("unmapped column type")
		}

		columns = append(columns, schema.Column{
			Name:            def.Name,
			Type:            typ,
			RawType:         def.RawType,
			OrdinalPosition: len(columns) + 1,
			Comment:         def.Comment,
		})
	}
	return columns, nil
}

// Athena has no foreign keys.
func (d *AthenaDialect) GetForeignKeys(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.ForeignKey, error) {
	return []schema.ForeignKey{}, nil
}

// Athena has no primary keys.
func (d *AthenaDialect) GetPKConstraint(ctx context.Context, c conn.Connection, table, schemaName string) ([]string, error) {
	return []string{}, nil
}

// Athena has no indexes.
func (d *AthenaDialect) GetIndexes(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.Index, error) {
	return []schema.Index{}, nil
}

// DoRollback does nothing; Athena has no transactions.
func (d *AthenaDialect) DoRollback(c conn.Connection) error {
	return nil
}

func (d *AthenaDialect) CheckUnicodeReturns(c conn.Connection) bool { return true }

func (d *AthenaDialect) CheckUnicodeDescription(c conn.Connection) bool { return true }
