package resolver

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/placeholder"
)

// Options configure a Resolve run. Zero-value tags fall back to the
// default "{{" and "}}" delimiters.
type Options struct {
	StartTag string
	EndTag   string

	// Strict fails on the first placeholder without a value
	// instead of substituting an empty string.
	Strict bool
}

// tags returns the configured start/end tags, falling back to
// double-brace defaults.
func (op Options) tags() (string, string) {
	startTag := op.StartTag
	if startTag == "" {
		startTag = placeholder.DefaultStart
	}

	endTag := op.EndTag
	if endTag == "" {
		endTag = placeholder.DefaultEnd
	}

	return startTag, endTag
}

// Resolve reads multi-document YAML from in, fills placeholders in
// every string value using ctx, and writes the re-encoded documents
// to out. Empty documents are skipped; document order is preserved.
func Resolve(
	in io.Reader,
	out io.Writer,
	ctx map[string]string,
	opts Options,
) error {
	const errCtx = "resolving placeholders"

	startTag, endTag := opts.tags()

	decoder := yaml.NewDecoder(in)

	firstDoc := true

	for {
		var doc interface{}

		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf(
				"%s: decoding yaml: %w",
				errCtx, err,
			)
		}

		if doc == nil {
			continue
		}

		filled, err := fillValue(
			doc, ctx, startTag, endTag, opts.Strict,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		buf, err := yaml.Marshal(filled)
		if err != nil {
			return fmt.Errorf(
				"%s: marshaling document: %w",
				errCtx, err,
			)
		}

		if firstDoc {
			firstDoc = false
		} else {
			if _, err := out.Write(
				[]byte("---\n"),
			); err != nil {
				return fmt.Errorf(
					"%s: writing separator: %w",
					errCtx, err,
				)
			}
		}

		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

// fillValue recursively fills placeholders in the string scalars of
// a decoded document.
func fillValue(
	v interface{},
	ctx map[string]string,
	startTag string,
	endTag string,
	strict bool,
) (interface{}, error) {
	switch tv := v.(type) {
	case string:
		tp := placeholder.NewWithDelimiters(
			tv, startTag, endTag,
		)

		if strict {
			filled, err := tp.FillStrict(ctx)
			if err != nil {
				return nil, err
			}

			return filled, nil
		}

		return tp.Fill(ctx), nil

	case map[string]interface{}:
		for key, val := range tv {
			filled, err := fillValue(
				val, ctx, startTag, endTag, strict,
			)
			if err != nil {
				return nil, err
			}

			tv[key] = filled
		}

		return tv, nil

	case []interface{}:
		for i, val := range tv {
			filled, err := fillValue(
				val, ctx, startTag, endTag, strict,
			)
			if err != nil {
				return nil, err
			}

			tv[i] = filled
		}

		return tv, nil

	default:
		return v, nil
	}
}
