package dialect

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"athena-dialect/internal/conn"
	"athena-dialect/internal/schema"
)

// Inspector is one reflection pass over a single connection. Schema, table
// and column lookups are memoized per (operation, arguments) for its
// lifetime; errors are not. An Inspector must not be shared between
// connections.
//
// Concurrent lookups of the same key share one query, which runs with the
// context of the caller that started it. If that context is cancelled, every
// caller waiting on the shared query gets the cancellation error; nothing is
// memoized and the next call queries again.
type Inspector struct {
	dialect Dialect
	conn    conn.Connection

	group singleflight.Group
	mu    sync.RWMutex
	memo  map[string]any
	gen   uint64
}

// NewInspector starts a reflection pass for c.
func NewInspector(d Dialect, c conn.Connection) *Inspector {
	return &Inspector{dialect: d, conn: c, memo: make(map[string]any)}
}

func (i *Inspector) Dialect() Dialect { return i.dialect }

func (i *Inspector) Connection() conn.Connection { return i.conn }

// DefaultSchemaName is the schema used when none is given.
func (i *Inspector) DefaultSchemaName() string {
	return i.dialect.DefaultSchemaName(i.conn)
}

func (i *Inspector) SchemaNames(ctx context.Context) ([]string, error) {
	v, err := i.cached("schema_names", func() (any, error) {
		return i.dialect.GetSchemaNames(ctx, i.conn)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]string)), nil
}

func (i *Inspector) TableNames(ctx context.Context, schemaName string) ([]string, error) {
	names, err := i.tableNames(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	return slices.Clone(names), nil
}

// HasTable is answered from the memoized table listing.
func (i *Inspector) HasTable(ctx context.Context, table, schemaName string) (bool, error) {
	names, err := i.tableNames(ctx, schemaName)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, table), nil
}

func (i *Inspector) Columns(ctx context.Context, table, schemaName string) ([]schema.Column, error) {
	s := schema.EffectiveSchema(i.conn, schemaName)
	v, err := i.cached(key("columns", s, table), func() (any, error) {
		return i.dialect.GetColumns(ctx, i.conn, table, s)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]schema.Column)), nil
}

func (i *Inspector) ForeignKeys(ctx context.Context, table, schemaName string) ([]schema.ForeignKey, error) {
	return i.dialect.GetForeignKeys(ctx, i.conn, table, schemaName)
}

func (i *Inspector) PKConstraint(ctx context.Context, table, schemaName string) ([]string, error) {
	return i.dialect.GetPKConstraint(ctx, i.conn, table, schemaName)
}

func (i *Inspector) Indexes(ctx context.Context, table, schemaName string) ([]schema.Index, error) {
	return i.dialect.GetIndexes(ctx, i.conn, table, schemaName)
}

// Reset drops everything memoized so far. Lookups already in flight finish
// but their results are not kept.
func (i *Inspector) Reset() {
	i.mu.Lock()
	i.memo = make(map[string]any)
	i.gen++
	i.mu.Unlock()
}

func (i *Inspector) tableNames(ctx context.Context, schemaName string) ([]string, error) {
	s := schema.EffectiveSchema(i.conn, schemaName)
	v, err := i.cached(key("table_names", s), func() (any, error) {
		return i.dialect.GetTableNames(ctx, i.conn, s)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// cached is a read-through lookup; concurrent loads of one key share a
// single query. A load started before a Reset is not stored.
func (i *Inspector) cached(k string, load func() (any, error)) (any, error) {
	i.mu.RLock()
	v, ok := i.memo[k]
	gen := i.gen
	i.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err, _ := i.group.Do(key(k, strconv.FormatUint(gen, 10)), func() (any, error) {
		i.mu.RLock()
		v, ok := i.memo[k]
		current := i.gen == gen
		i.mu.RUnlock()
		if ok && current {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}
		i.mu.Lock()
		if i.gen == gen {
			i.memo[k] = v
		}
		i.mu.Unlock()
		return v, nil
	})
	return v, err
}

func key(op string, args ...string) string {
	return op + "\x00" + strings.Join(args, "\x00")
}
