package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Stamps reads workspace status files and merges them into a single
// context. Each line is "KEY VALUE" with the first space as
// delimiter. Lines without a space are silently skipped. Later files
// override earlier ones.
func Stamps(paths []string) (map[string]string, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]string)

	for _, sf := range paths {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				stamps[parts[0]] = parts[1]
			}
		}
	}

	return stamps, nil
}

// JSON reads a JSON object from r and returns its top-level string
// fields as a context.
func JSON(r io.Reader) (map[string]string, error) {
	const errCtx = "loading json context"

	var fields map[string]interface{}

	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return stringFields(fields), nil
}

// YAML reads a YAML mapping from r and returns its top-level string
// fields as a context.
func YAML(r io.Reader) (map[string]string, error) {
	const errCtx = "loading yaml context"

	var fields map[string]interface{}

	if err := yaml.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return stringFields(fields), nil
}

// TOML reads a TOML document from r and returns its top-level string
// fields as a context.
func TOML(r io.Reader) (map[string]string, error) {
	const errCtx = "loading toml context"

	var fields map[string]interface{}

	if _, err := toml.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return stringFields(fields), nil
}

// Env returns the process environment as a context.
func Env() map[string]string {
	ctx := make(map[string]string)

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			ctx[parts[0]] = parts[1]
		}
	}

	return ctx
}

// Merge combines contexts into a new one. Later contexts override
// earlier ones.
func Merge(ctxs ...map[string]string) map[string]string {
	merged := make(map[string]string)

	for _, ctx := range ctxs {
		for key, val := range ctx {
			merged[key] = val
		}
	}

	return merged
}

// stringFields keeps only the string-valued fields of a decoded
// document.
func stringFields(
	fields map[string]interface{},
) map[string]string {
	ctx := make(map[string]string, len(fields))

	for key, val := range fields {
		if s, ok := val.(string); ok {
			ctx[key] = s
		}
	}

	return ctx
}
