package conn

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	r := &Record{
		Columns: []string{"schema_name", "comment"},
		Values: []sql.NullString{
			{String: "analytics", Valid: true},
			{},
		},
	}

	v, ok := r.At(0)
	assert.True(t, ok)
	assert.Equal(t, "analytics", v)

	v, ok = r.Get("SCHEMA_NAME")
	assert.True(t, ok)
	assert.Equal(t, "analytics", v)

	_, ok = r.Get("comment")
	assert.False(t, ok, "NULL values report false")

	_, ok = r.Get("missing")
	assert.False(t, ok)

	_, ok = r.At(5)
	assert.False(t, ok)
	_, ok = r.At(-1)
	assert.False(t, ok)
}

func TestNewRecord(t *testing.T) {
	r := NewRecord(nil, "CREATE EXTERNAL TABLE `t`(")
	v, ok := r.At(0)
	assert.True(t, ok)
	assert.Equal(t, "CREATE EXTERNAL TABLE `t`(", v)
}
