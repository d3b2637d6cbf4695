package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"athena-dialect/internal/dialect"
)

// ConnectionConfig is one entry of the connections list. Options fill in
// connection URL query parameters the URL itself does not set, so secrets
// and long S3 paths can live outside the URL.
type ConnectionConfig struct {
	Name    string            `mapstructure:"name"`
	URL     string            `mapstructure:"url"`
	Active  bool              `mapstructure:"active"`
	Options map[string]string `mapstructure:"options"`
}

// GetActiveConnection returns the active connection configuration. Exactly
// one entry must be active and its URL must name a known dialect.
func GetActiveConnection() (*ConnectionConfig, error) {
	var configs []ConnectionConfig

	if err := viper.UnmarshalKey("connections", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse connections config: %w", err)
	}

	var active []*ConnectionConfig
	for i := range configs {
		if configs[i].Active {
			active = append(active, &configs[i])
		}
	}

	switch len(active) {
	case 0:
		return nil, fmt.Errorf("no active connection found in config (set active: true)")
	case 1:
	default:
		names := make([]string, 0, len(active))
		for _, c := range active {
			names = append(names, c.Name)
		}
		return nil, fmt.Errorf("multiple active connections found (%s); only one can be active", strings.Join(names, ", "))
	}

	if err := active[0].validate(); err != nil {
		return nil, err
	}
	return active[0], nil
}

func (c *ConnectionConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("active connection %q has no url", c.Name)
	}
	if _, err := dialect.ForURL(c.URL, logger); err != nil {
		return fmt.Errorf("connection %q: %w", c.Name, err)
	}
	return nil
}

// resolveConnection prefers --url (or connection.url) over the active entry
// of the connections list.
func resolveConnection() (*ConnectionConfig, error) {
	if u := viper.GetString("connection.url"); u != "" {
		return &ConnectionConfig{Name: "url", URL: u, Active: true}, nil
	}
	active, err := GetActiveConnection()
	if err != nil {
		return nil, fmt.Errorf("no connection url: %w", err)
	}
	logger.Debug().Str("connection", active.Name).Msg("Using configured connection")
	return active, nil
}

// applySettings fills connection options the URL left out, first from the
// connection entry, then from the global settings.
func applySettings(opts *dialect.ConnectionOptions, cfg *ConnectionConfig) {
	if cfg != nil {
		for k, v := range cfg.Options {
			if _, ok := opts.Extra[k]; !ok {
				opts.Extra[k] = v
			}
		}
	}
	if _, ok := opts.Extra[dialect.OptionPollInterval]; ok {
		return
	}
	if v := viper.GetString("settings.poll_interval"); v != "" {
		opts.Extra[dialect.OptionPollInterval] = v
	}
}
