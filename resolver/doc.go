// Package resolver walks multi-document YAML and fills template
// placeholders inside every string scalar using a replacement
// context. Keys are left untouched. It handles both single-document
// and multi-document YAML streams separated by "---" markers.
package resolver
