package templating

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/byte4ever/placeholder"
	"github.com/byte4ever/placeholder/digester"
	"github.com/byte4ever/placeholder/loader"
)

// Engine expands templates using stamp info files and explicit
// variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string

	// Strict fails on placeholders without a value instead of
	// substituting an empty string.
	Strict bool

	// SkipUnchanged leaves the output file untouched when its
	// content already matches the rendered result, preserving
	// mtimes for build tools.
	SkipUnchanged bool
}

// Expand reads a template, substitutes variables, and writes the
// result. If outPath is empty it writes to stdout. If executable is
// true the output file receives mode 0777 instead of 0666.
//
// Processing order:
//  1. Load stamp files into a stamp context.
//  2. For each variable NAME=VALUE, expand VALUE against stamps
//     using single-brace tags, then store as both "NAME" and
//     "variables.NAME" in context.
//  3. For each import NAME=filename, read the file, expand it
//     against context with the configured tags, then expand again
//     against stamps with single-brace tags, and store as
//     "imports.NAME" in context.
//  4. Expand the template against context.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	stamps, err := loader.Stamps(en.StampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Stamps form the base context; variables and imports
	// override them.
	ctx := make(map[string]string, len(stamps))
	for key, val := range stamps {
		ctx[key] = val
	}

	if err := en.resolveVars(vars, stamps, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveImports(
		imports, stamps, ctx,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	result, err := en.fill(string(tplContent), ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.writeOutput(
		outPath, result, executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// fill expands text against ctx with the configured tags, honoring
// the engine's strictness.
func (en *Engine) fill(
	text string,
	ctx map[string]string,
) (string, error) {
	startTag, endTag := en.tags()

	tp := placeholder.NewWithDelimiters(text, startTag, endTag)

	if en.Strict {
		return tp.FillStrict(ctx)
	}

	return tp.Fill(ctx), nil
}

// tags returns the configured start/end tags, falling back to
// double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = placeholder.DefaultStart
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = placeholder.DefaultEnd
	}

	return startTag, endTag
}

// resolveVars processes --variable flags. Each variable value is
// expanded against stamps using single-brace tags, then stored as
// both "NAME" and "variables.NAME".
func (en *Engine) resolveVars(
	vars []string,
	stamps map[string]string,
	ctx map[string]string,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		parts := strings.SplitN(vr, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val := placeholder.NewWithDelimiters(
			parts[1], "{", "}",
		).Fill(stamps)

		ctx[parts[0]] = val
		ctx["variables."+parts[0]] = val
	}

	return nil
}

// resolveImports processes --imports flags. Each import file is
// read, expanded against ctx with the configured tags, then expanded
// again against stamps with single-brace tags, and stored as
// "imports.NAME".
func (en *Engine) resolveImports(
	imports []string,
	stamps map[string]string,
	ctx map[string]string,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		parts := strings.SplitN(im, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(parts[1]) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, parts[1], err,
			)
		}

		// First pass: expand against context with configured
		// tags.
		val, err := en.fill(string(content), ctx)
		if err != nil {
			return fmt.Errorf(
				"%s: expanding %s: %w",
				errCtx, parts[1], err,
			)
		}

		// Second pass: expand against stamps with single-brace
		// tags.
		ctx["imports."+parts[0]] = placeholder.NewWithDelimiters(
			val, "{", "}",
		).Fill(stamps)
	}

	return nil
}

// readTemplate reads the template from a file path. If tplPath is
// empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// writeOutput writes the rendered result. When outPath is empty it
// writes to stdout. With SkipUnchanged set, an output file whose
// content already matches is left untouched.
func (en *Engine) writeOutput(
	outPath string,
	result string,
	executable bool,
) error {
	const errCtx = "writing output"

	if outPath == "" {
		if _, err := os.Stdout.WriteString(result); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w", errCtx, err,
			)
		}

		return nil
	}

	if en.SkipUnchanged {
		same, err := digester.FileMatches(
			outPath, []byte(result),
		)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if same {
			return nil
		}
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := fi.WriteString(result); err != nil {
		_ = fi.Close() //nolint:errcheck // write error takes precedence

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := fi.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
