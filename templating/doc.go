// Package templating provides a file-based template engine that
// substitutes variables from stamp info files and explicit key-value
// pairs. It is built on package placeholder with configurable
// delimiters (default "{{" and "}}").
//
// The Engine type holds configuration (start/end tags, stamp info
// files, strictness) and expands templates via the Expand method,
// which reads a template file, applies variable substitution and
// import expansion, and writes the result.
package templating
