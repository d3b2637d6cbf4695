package dialect

import (
	"strings"
)

// functionArgspec renders an argument list as "(a, b, ...)".
func functionArgspec(args []string) string {
	return "(" + strings.Join(args, ", ") + ")"
}

// quoteWith wraps s in quote, doubling any embedded quote characters.
func quoteWith(s, quote string) string {
	return quote + strings.ReplaceAll(s, quote, quote+quote) + quote
}
