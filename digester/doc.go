// Package digester computes content digests used to skip rewriting
// template outputs that have not changed, preserving file mtimes for
// build tools that track them.
package digester
