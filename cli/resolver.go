package cli

import (
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/kaleido/log"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys name flags without their leading dashes. Nested mappings are joined
// with '-', and underscores may stand in for hyphens, so these are
// equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Sequences set repeatable flags:
//
//	binop: ["^=50", "%=40"]
//
// Command-line flags override config file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return config{}, nil
		}

		return nil, err
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened configuration.
type config map[string]any

func (r config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			r.flatten(key, sub)

			continue
		}

		r[key] = flagValue(value)
	}
}

// flagValue converts a decoded YAML value into the form kong's mappers
// accept. Numbers become strings, and sequences become comma-separated
// lists.
func flagValue(v any) any {
	switch v := v.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := flagValue(item).(string); ok {
				items = append(items, s)
			}
		}

		return strings.Join(items, ",")
	default:
		return v
	}
}

// Validate implements [kong.Resolver]. Keys that name no flag are reported
// but do not fail the parse.
func (r config) Validate(app *kong.Application) error {
	known := map[string]bool{}
	collectFlags(app.Node, known)

	var unknown []string

	for key := range r {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)
		log.Warn("ignoring unknown configuration keys",
			slog.Any("keys", unknown))
	}

	return nil
}

func collectFlags(n *kong.Node, known map[string]bool) {
	if n == nil {
		return
	}

	for _, f := range n.Flags {
		known[f.Name] = true
	}

	for _, c := range n.Children {
		collectFlags(c, known)
	}
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
