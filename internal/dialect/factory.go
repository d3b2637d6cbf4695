package dialect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnknownDialect is returned for names no dialect is registered under.
var ErrUnknownDialect = errors.New("unknown dialect")

// GetDialect returns the Dialect registered under name. A "+driver" suffix
// (as in "awsathena+jdbc") is ignored.
func GetDialect(name string, logger zerolog.Logger) (Dialect, error) {
	base, _, _ := strings.Cut(strings.ToLower(name), "+")
	switch base {
	case athenaDialectName, "athena":
		return NewAthenaDialect(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// ForURL picks the dialect from the scheme of a connection URL.
func ForURL(rawURL string, logger zerolog.Logger) (Dialect, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid connection url: %w", err)
	}
	return GetDialect(u.Scheme, logger)
}

// Ensure interface implementation
var _ Dialect = (*AthenaDialect)(nil)
