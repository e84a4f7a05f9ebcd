// Package main provides the resolver CLI that reads multi-document
// YAML, fills template placeholders in its string values from
// key=value flags and context files, and writes the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/placeholder/loader"
	"github.com/byte4ever/placeholder/resolver"
)

type setFlags map[string]string

func (sf *setFlags) String() string {
	return fmt.Sprintf("%v", *sf)
}

func (sf *setFlags) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return errors.New(
			"set flag must be name=value",
		)
	}

	(*sf)[strings.TrimSpace(parts[0])] = parts[1]

	return nil
}

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

// loadContextFile loads a context file, picking the format from the
// file extension. Unknown extensions are treated as stamp info
// files.
func loadContextFile(path string) (map[string]string, error) {
	const errCtx = "loading context file"

	fi, err := os.Open(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer fi.Close() //nolint:errcheck // best-effort close

	var (
		ctx     map[string]string
		loadErr error
	)

	switch filepath.Ext(path) {
	case ".json":
		ctx, loadErr = loader.JSON(fi)
	case ".yaml", ".yml":
		ctx, loadErr = loader.YAML(fi)
	case ".toml":
		ctx, loadErr = loader.TOML(fi)
	default:
		ctx, loadErr = loader.Stamps([]string{path})
	}

	if loadErr != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, loadErr)
	}

	return ctx, nil
}

func run() error {
	const errCtx = "resolver"

	var (
		inFile   string
		outFile  string
		startTag string
		endTag   string
		strict   bool
	)

	values := make(setFlags)

	var contextFiles arrayFlags

	flag.StringVar(
		&inFile, "infile", "",
		"input YAML file path (default: stdin)",
	)

	flag.StringVar(
		&outFile, "outfile", "",
		"output YAML file path (default: stdout)",
	)

	flag.Var(
		&values, "set",
		"name=value replacement (repeatable)",
	)

	flag.Var(
		&contextFiles, "context-file",
		"context file, format by extension (repeatable)",
	)

	flag.StringVar(
		&startTag, "start_tag", "{{",
		"start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", "}}",
		"end tag for template placeholders",
	)

	flag.BoolVar(
		&strict, "strict", false,
		"fail on placeholders without a value",
	)

	flag.Parse()

	ctx := make(map[string]string)

	for _, cf := range contextFiles {
		loaded, err := loadContextFile(cf)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ctx = loader.Merge(ctx, loaded)
	}

	// Explicit -set values override context files.
	ctx = loader.Merge(ctx, values)

	inReader := os.Stdin

	if inFile != "" {
		fi, err := os.Open(inFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: opening input: %w",
				errCtx, err,
			)
		}

		defer fi.Close() //nolint:errcheck // best-effort close

		inReader = fi
	}

	outWriter := os.Stdout

	if outFile != "" {
		fo, err := os.Create(outFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: creating output: %w",
				errCtx, err,
			)
		}

		defer fo.Close() //nolint:errcheck // best-effort close

		outWriter = fo
	}

	if err := resolver.Resolve(
		inReader, outWriter, ctx,
		resolver.Options{
			StartTag: startTag,
			EndTag:   endTag,
			Strict:   strict,
		},
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
