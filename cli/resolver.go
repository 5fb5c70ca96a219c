package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads YAML config files and
// applies their values to Kong flags.
//
// The YAML structure is a flat mapping from flag names to values. Flag names
// with hyphens (e.g., "log-level") may use underscores in the config file
// (e.g., "log_level"). Nested mappings are flattened with hyphenated keys, so
// the two spellings below are equivalent:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		// Malformed config file - ignore and use defaults
		return config{}, nil //nolint:nilerr
	}

	flat := make(config)
	flatten(flat, "", raw)

	return flat, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten folds nested mappings into dst using hyphen-joined keys. Scalars
// are normalized so Kong can parse them from their string form.
func flatten(dst config, prefix string, src map[string]any) {
	for key, val := range src {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		switch v := val.(type) {
		case map[string]any:
			flatten(dst, name, v)

		case int64:
			// Kong requires numbers as strings for parsing
			dst[name] = strconv.FormatInt(v, 10)

		case uint64:
			dst[name] = strconv.FormatUint(v, 10)

		case float64:
			dst[name] = strconv.FormatFloat(v, 'f', -1, 64)

		default:
			dst[name] = v
		}
	}
}
