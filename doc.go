// Package placeholder is a minimal text-templating engine. Template
// text contains named placeholders between configurable delimiters
// (handlebars-style "{{name}}" by default) that are filled from a map,
// a resolver function, or the string fields of a serializable struct.
//
// The engine performs single-pass flat substitution: no nesting,
// conditionals, loops, or escaping. Tokenization never fails; an
// opened-but-unclosed delimiter degrades to literal text. Lenient
// fills replace unresolved placeholders with empty strings, strict
// fills abort on the first unresolved placeholder and return no
// partial output.
package placeholder
