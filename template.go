package placeholder

import (
	"strings"

	"github.com/goccy/go-json"
)

// Default placeholder delimiters, following the handlebars syntax.
const (
	DefaultStart = "{{"
	DefaultEnd   = "}}"
)

// Template is a tokenized template text. It is immutable after
// construction and safe for concurrent fills, provided the supplied
// replacement source is itself safe for concurrent use.
type Template struct {
	tokens []Token
}

// New tokenizes text using the default "{{" and "}}" delimiters.
func New(text string) *Template {
	return NewWithDelimiters(text, DefaultStart, DefaultEnd)
}

// NewWithDelimiters tokenizes text using custom start and end
// delimiters. Both must be non-empty. Construction never fails;
// malformed placeholders become literal text.
func NewWithDelimiters(text, start, end string) *Template {
	var tokens []Token

	tk := NewTokenizer(text, start, end)

	for {
		token, ok := tk.Next()
		if !ok {
			break
		}

		tokens = append(tokens, token)
	}

	return &Template{tokens: tokens}
}

// Placeholders returns the placeholder names in token order,
// duplicates preserved.
func (tp *Template) Placeholders() []string {
	var names []string

	for _, token := range tp.tokens {
		if token.Kind == KindPlaceholder {
			names = append(names, token.Value)
		}
	}

	return names
}

// FillFunc walks the template, resolving each placeholder through
// resolve. The resolver is invoked exactly once per placeholder
// token, in left-to-right order, and never for text tokens; it may
// be stateful. Returning false aborts the fill with a
// *PlaceholderError and no partial output.
//
// This is the most general fill; the other fill methods are
// implemented in terms of it.
func (tp *Template) FillFunc(
	resolve func(name string) (string, bool),
) (string, error) {
	var sb strings.Builder

	for _, token := range tp.tokens {
		if token.Kind == KindText {
			sb.WriteString(token.Value)

			continue
		}

		value, ok := resolve(token.Value)
		if !ok {
			return "", &PlaceholderError{Name: token.Value}
		}

		sb.WriteString(value)
	}

	return sb.String(), nil
}

// Fill resolves placeholders from replacements. Names without a
// value become empty strings; Fill never fails.
func (tp *Template) Fill(replacements map[string]string) string {
	result, _ := tp.FillFunc(
		func(name string) (string, bool) {
			return replacements[name], true
		},
	)

	return result
}

// FillStrict resolves placeholders from replacements, failing with
// a *PlaceholderError on the first name without a value.
func (tp *Template) FillStrict(
	replacements map[string]string,
) (string, error) {
	return tp.FillFunc(
		func(name string) (string, bool) {
			value, ok := replacements[name]

			return value, ok
		},
	)
}

// FillStruct resolves placeholders from the top-level string fields
// of v, which must serialize to a JSON object. Missing fields and
// fields whose serialized value is not a string become empty
// strings.
func (tp *Template) FillStruct(v interface{}) (string, error) {
	fields, err := structFields(v)
	if err != nil {
		return "", err
	}

	return tp.FillFunc(
		func(name string) (string, bool) {
			value, _ := fields[name].(string)

			return value, true
		},
	)
}

// FillStructStrict resolves placeholders from the top-level string
// fields of v. A missing field, or one whose serialized value is
// not a string, fails with a *PlaceholderError.
func (tp *Template) FillStructStrict(
	v interface{},
) (string, error) {
	fields, err := structFields(v)
	if err != nil {
		return "", err
	}

	return tp.FillFunc(
		func(name string) (string, bool) {
			value, ok := fields[name].(string)

			return value, ok
		},
	)
}

// structFields serializes v once per fill call and exposes its
// top-level fields for per-placeholder lookup.
func structFields(
	v interface{},
) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	var fields map[string]interface{}

	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &SerializationError{Err: err}
	}

	return fields, nil
}
