// Package conn defines the narrow connection contract the dialect consumes
// and the adapters that satisfy it.
package conn

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrQueryFailed is returned when the engine reports a failed query.
	ErrQueryFailed = errors.New("query failed")

	// ErrQueryCancelled is returned when the engine reports a cancelled query.
	ErrQueryCancelled = errors.New("query cancelled")
)

// Connection executes a query and returns all of its rows.
// Implementations also carry the schema they were opened against.
type Connection interface {
	Execute(ctx context.Context, query string) ([]Row, error)
	SchemaName() string
}

// Row exposes one result row by position or by column name.
// Names match case-insensitively. The boolean is false for NULL values
// and missing fields.
type Row interface {
	At(i int) (string, bool)
	Get(name string) (string, bool)
}

// Record is the Row implementation shared by the adapters in this package.
type Record struct {
	Columns []string
	Values  []sql.NullString
}

// NewRecord builds a Record from column names and non-null values.
func NewRecord(columns []string, values ...string) *Record {
	r := &Record{Columns: columns, Values: make([]sql.NullString, len(values))}
	for i, v := range values {
		r.Values[i] = sql.NullString{String: v, Valid: true}
	}
	return r
}

func (r *Record) At(i int) (string, bool) {
	if i < 0 || i >= len(r.Values) {
		return "", false
	}
	v := r.Values[i]
	return v.String, v.Valid
}

func (r *Record) Get(name string) (string, bool) {
	for i, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return r.At(i)
		}
	}
	return "", false
}

var _ Row = (*Record)(nil)
