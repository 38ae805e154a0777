package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader for YAML files. Top-level keys set global
// flags, and a mapping named after a command sets that command's flags:
//
//	shard-url: http://127.0.0.1:2020
//	log_level: debug
//	serve:
//	  address: ":3030"
//	  backend: sqlite
//
// Keys may use dashes or underscores.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed decoding YAML configuration: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		scopes := []map[string]any{}
		if parent != nil && parent.Command != nil {
			if section, ok := lookup(values, parent.Command.Name).(map[string]any); ok {
				scopes = append(scopes, section)
			}
		}
		scopes = append(scopes, values)

		for _, scope := range scopes {
			raw := lookup(scope, flag.Name)
			if raw == nil {
				continue
			}
			if _, ok := raw.(map[string]any); ok {
				return nil, fmt.Errorf("configuration key '%s' must be a scalar", flag.Name)
			}
			return scalar(raw), nil
		}

		return nil, nil
	}

	return f, nil
}

func lookup(values map[string]any, name string) any {
	for _, k := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := values[k]; ok {
			return v
		}
	}
	return nil
}

// scalar renders YAML scalars and sequences as the strings kong parses flag
// values from.
func scalar(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
