package schema

import (
	"regexp"
	"strings"
)

// columnLineRe matches a backtick-quoted identifier followed by whitespace
// and the rest of the line as the type.
var columnLineRe = regexp.MustCompile("^`([^`]+)`\\s+(.+)$")

const commentKeyword = "COMMENT"

// ParseColumnLine extracts a column definition from one line of SHOW CREATE
// TABLE output. Lines that are not column definitions (the CREATE header, a
// lone ")", PARTITIONED BY, LOCATION, TBLPROPERTIES...) return false.
//
// The line is uppercased before matching, so RawType and Comment come back
// uppercase; Name is lowercased. A type or identifier that itself contains
// the word COMMENT is split at that point.
func ParseColumnLine(raw string) (ColumnDefinition, bool) {
	row := strings.TrimSpace(strings.ToUpper(raw))
	if strings.HasSuffix(row, ",") || strings.HasSuffix(row, ")") {
		row = row[:len(row)-1]
	}

	var comment *string
	if before, after, found := strings.Cut(row, commentKeyword); found {
		row = before
		if c := strings.TrimSpace(after); c != "" {
			comment = &c
		}
	}

	m := columnLineRe.FindStringSubmatch(strings.TrimSpace(row))
	if m == nil {
		return ColumnDefinition{}, false
	}

	return ColumnDefinition{
		Name:    strings.ToLower(m[1]),
		RawType: strings.TrimSpace(m[2]),
		Comment: comment,
	}, true
}
