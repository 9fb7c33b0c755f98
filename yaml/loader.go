// Package yaml loads CLI configuration files for kong.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/netkit"
	"gopkg.in/yaml.v3"
)

var _ kong.ConfigurationLoader = Loader

// Loader is a kong.ConfigurationLoader for YAML files. Keys are flag names,
// either at the top level or scoped under a command name:
//
//	log-level: debug
//	listen:
//	  port: 9000
//	  max_conns: 64
//
// A command-scoped key wins over a top-level key. Dashes and underscores in
// keys are interchangeable.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid YAML config: %v", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if scoped, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(scoped, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}

// lookup finds name in m under its dashed or snake_case spelling.
// Scalars are returned as strings so every kong mapper can decode them.
func lookup(m map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch v := v.(type) {
		case map[string]any:
			return nil, false
		case []any:
			return v, true
		case nil:
			return nil, false
		default:
			return fmt.Sprint(v), true
		}
	}
	return nil, false
}
