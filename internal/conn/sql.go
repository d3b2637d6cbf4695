package conn

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SQLConnection adapts a database/sql handle to Connection.
type SQLConnection struct {
	db     *sql.DB
	schema string
	logger zerolog.Logger
}

// NewSQLConnection wraps db. schemaName is reported by SchemaName and is
// not applied to the session.
func NewSQLConnection(db *sql.DB, schemaName string, logger zerolog.Logger) *SQLConnection {
	return &SQLConnection{
		db:     db,
		schema: schemaName,
		logger: logger.With().Str("component", "sql-connection").Logger(),
	}
}

func (c *SQLConnection) SchemaName() string { return c.schema }

// Execute runs query and scans every column of every row as nullable text.
func (c *SQLConnection) Execute(ctx context.Context, query string) ([]Row, error) {
	c.logger.Debug().Str("query", query).Msg("executing query")

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		rec := &Record{Columns: cols, Values: make([]sql.NullString, len(cols))}
		dest := make([]any, len(cols))
		for i := range rec.Values {
			dest[i] = &rec.Values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying handle.
func (c *SQLConnection) Close() error {
	return c.db.Close()
}

var _ Connection = (*SQLConnection)(nil)
