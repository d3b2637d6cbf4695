// Package dialect adapts a relational toolkit's reflection and rendering
// expectations to the capabilities of a specific engine.
package dialect

import (
	"context"

	"athena-dialect/internal/conn"
	"athena-dialect/internal/schema"
)

// Dialect abstracts engine-specific connection, reflection and rendering
// behaviour.
type Dialect interface {
	Name() string
	Driver() string
	Capabilities() Capabilities

	// Connection setup
	CreateConnectArgs(rawURL string) (*ConnectionOptions, error)
	DefaultSchemaName(c conn.Connection) string

	// Reflection. An empty schemaName means the connection's schema.
	GetSchemaNames(ctx context.Context, c conn.Connection) ([]string, error)
	GetTableNames(ctx context.Context, c conn.Connection, schemaName string) ([]string, error)
	HasTable(ctx context.Context, c conn.Connection, table, schemaName string) (bool, error)
	GetColumns(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.Column, error)
	GetForeignKeys(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.ForeignKey, error)
	GetPKConstraint(ctx context.Context, c conn.Connection, table, schemaName string) ([]string, error)
	GetIndexes(ctx context.Context, c conn.Connection, table, schemaName string) ([]schema.Index, error)

	// Transactions
	DoRollback(c conn.Connection) error

	// Rendering
	Preparer() *IdentifierPreparer
	Compiler() *Compiler

	// Driver checks
	CheckUnicodeReturns(c conn.Connection) bool
	CheckUnicodeDescription(c conn.Connection) bool
}
