package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"athena-dialect/internal/conn"
)

// DefaultSchemaName is used when neither the caller nor the connection
// names a schema.
const DefaultSchemaName = "default"

// internalSchema is the engine's own metadata schema.
const internalSchema = "information_schema"

// EffectiveSchema resolves the schema a call operates on: the explicit
// argument, else the connection's schema, else DefaultSchemaName.
func EffectiveSchema(c conn.Connection, schema string) string {
	if schema != "" {
		return schema
	}
	if c != nil {
		if s := c.SchemaName(); s != "" {
			return s
		}
	}
	return DefaultSchemaName
}

// Catalog issues the catalog queries used for reflection. Query errors are
// returned exactly as the connection reported them.
type Catalog struct {
	logger zerolog.Logger
}

// NewCatalog creates a catalog.
func NewCatalog(logger zerolog.Logger) *Catalog {
	return &Catalog{logger: logger.With().Str("component", "catalog").Logger()}
}

// SchemaNamesQuery lists every schema except the engine's internal one.
func SchemaNamesQuery() string {
	return fmt.Sprintf(`SELECT schema_name FROM information_schema.schemata WHERE schema_name NOT IN (%s)`,
		QuoteLiteral(internalSchema))
}

// TableNamesQuery lists the tables of schema.
func TableNamesQuery(schema string) string {
	return fmt.Sprintf(`SELECT table_name FROM information_schema.tables WHERE table_schema = %s`,
		QuoteLiteral(schema))
}

// ShowCreateTableQuery asks for the DDL of schema.table.
func ShowCreateTableQuery(schema, table string) string {
	return fmt.Sprintf("SHOW CREATE TABLE %s.%s", QuoteDDLIdentifier(schema), QuoteDDLIdentifier(table))
}

// SchemaNames returns the schema names in the order the engine returns them.
func (cat *Catalog) SchemaNames(ctx context.Context, c conn.Connection) ([]string, error) {
	return cat.names(ctx, c, SchemaNamesQuery(), "schema_name")
}

// TableNames returns the table names of the effective schema.
func (cat *Catalog) TableNames(ctx context.Context, c conn.Connection, schema string) ([]string, error) {
	return cat.names(ctx, c, TableNamesQuery(EffectiveSchema(c, schema)), "table_name")
}

// TableExists reports whether table is listed, case-sensitively, in the
// effective schema. A schema that does not exist has no tables.
func (cat *Catalog) TableExists(ctx context.Context, c conn.Connection, table, schema string) (bool, error) {
	names, err := cat.TableNames(ctx, c, schema)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == table {
			return true, nil
		}
	}
	return false, nil
}

// CreateTableLines returns the SHOW CREATE TABLE output of table, one line
// per row.
func (cat *Catalog) CreateTableLines(ctx context.Context, c conn.Connection, table, schema string) ([]string, error) {
	query := ShowCreateTableQuery(EffectiveSchema(c, schema), table)
	cat.logger.Debug().Str("query", query).Msg("catalog query")

	rows, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		v, _ := r.At(0)
		lines = append(lines, v)
	}
	return lines, nil
}

func (cat *Catalog) names(ctx context.Context, c conn.Connection, query, field string) ([]string, error) {
	cat.logger.Debug().Str("query", query).Msg("catalog query")

	rows, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Get(field)
		if !ok {
			if v, ok = r.At(0); !ok {
				continue
			}
		}
		names = append(names, v)
	}
	return names, nil
}

// QuoteLiteral wraps value in single quotes, doubling embedded quotes.
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// QuoteDDLIdentifier wraps name in backticks, the quoting Athena DDL
// statements accept, doubling embedded backticks.
func QuoteDDLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
