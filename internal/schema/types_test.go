package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveType(t *testing.T) {
	tests := []struct {
		token string
		want  Type
	}{
		{"DOUBLE", Float},
		{"SMALLINT", Integer},
		{"BOOLEAN", Boolean},
		{"INTEGER", Integer},
		{"VARCHAR", String},
		{"TINYINT", Integer},
		{"DECIMAL", Decimal},
		{"ARRAY", String},
		{"ROW", String},
		{"VARBINARY", Binary},
		{"MAP", String},
		{"BIGINT", BigInt},
		{"DATE", Date},
		{"TIMESTAMP", Timestamp},
		{"STRING", String},
		{"INT", Integer},
		{"FLOAT", Float},
		{"STRUCT", String},
		{"BINARY", Binary},

		{"DECIMAL(10,2)", Decimal},
		{"VARCHAR(255)", String},
		{"ARRAY<STRING>", String},
		{"MAP<STRING,INT>", String},
		{"STRUCT<A:INT,B:STRING>", String},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveType(tt.token))
		})
	}
}

func TestResolveType_Unknown(t *testing.T) {
	for _, token := range []string{"", "GEOMETRY", "JSON", "IPADDRESS", "UUID", "123", "<>"} {
		assert.NotPanics(t, func() {
			assert.Equal(t, Null, ResolveType(token), token)
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "BIGINT", BigInt.String())
	assert.Equal(t, "NULL", Null.String())
	assert.Equal(t, "NULL", Type(99).String())

	text, err := Timestamp.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "TIMESTAMP", string(text))
}
