package dialect

import (
	"strings"
)

// ReservedWords answers whether an identifier is a reserved word.
type ReservedWords interface {
	Contains(word string) bool
}

// UniversalSet treats every word as reserved.
type UniversalSet struct{}

func (UniversalSet) Contains(string) bool { return true }

// IdentifierPreparer decides when and how identifiers are quoted.
type IdentifierPreparer struct {
	reserved ReservedWords
	quote    string
}

// NewIdentifierPreparer returns a preparer quoting with double quotes.
func NewIdentifierPreparer(reserved ReservedWords) *IdentifierPreparer {
	return &IdentifierPreparer{reserved: reserved, quote: `"`}
}

// RequiresQuotes reports whether ident must be quoted.
func (p *IdentifierPreparer) RequiresQuotes(ident string) bool {
	return p.reserved.Contains(strings.ToLower(ident)) || !isLegalIdentifier(ident)
}

// Quote quotes ident if it requires quoting.
func (p *IdentifierPreparer) Quote(ident string) string {
	if !p.RequiresQuotes(ident) {
		return ident
	}
	return quoteWith(ident, p.quote)
}

// FormatTable renders a table name, schema-qualified when schemaName is set.
func (p *IdentifierPreparer) FormatTable(schemaName, table string) string {
	if schemaName == "" {
		return p.Quote(table)
	}
	return p.Quote(schemaName) + "." + p.Quote(table)
}

func isLegalIdentifier(ident string) bool {
	if ident == "" {
		return false
	}
	for i, r := range ident {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case i > 0 && (r == '$' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}

// Compiler renders the SQL constructs whose spelling differs per engine.
type Compiler struct {
	functions map[string]string
}

// NewCompiler returns a compiler substituting function names per
// substitutions (keys are lowercase toolkit names).
func NewCompiler(substitutions map[string]string) *Compiler {
	return &Compiler{functions: substitutions}
}

// FunctionName returns the engine's name for a toolkit function.
func (c *Compiler) FunctionName(name string) string {
	if sub, ok := c.functions[strings.ToLower(name)]; ok {
		return sub
	}
	return name
}

// RenderFunction renders a call with already-compiled arguments.
func (c *Compiler) RenderFunction(name string, args ...string) string {
	return c.FunctionName(name) + functionArgspec(args)
}
