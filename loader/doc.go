// Package loader builds replacement contexts for templates from
// external sources: workspace stamp info files, JSON, YAML, and TOML
// documents, and the process environment.
//
// Structured sources contribute only their top-level string fields,
// matching the struct fill rule of package placeholder: numeric,
// boolean, and nested values are ignored rather than stringified.
package loader
