package templating_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/placeholder"
	"github.com/byte4ever/placeholder/templating"
)

// writeTemp creates a temporary file with content and returns its
// path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestExpand_variable_substitution_custom_tags(
	t *testing.T,
) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt", "Hello <%name%>!",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{
		StartTag: "<%",
		EndTag:   "%>",
	}

	err := en.Expand(
		tplPath, outPath,
		[]string{"name=World"},
		nil,
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(got))
}

func TestExpand_stamp_file_substitution(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stampPath := writeTemp(
		t, dir, "stamp.txt",
		"BUILD_USER alice\nBUILD_HOST ci-01\n",
	)

	tplPath := writeTemp(
		t, dir, "tpl.txt",
		"Built by {{BUILD_USER}} on {{BUILD_HOST}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{
		StampInfoFiles: []string{stampPath},
	}

	err := en.Expand(
		tplPath, outPath, nil, nil, false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(
		t,
		"Built by alice on ci-01",
		string(got),
	)
}

func TestExpand_missing_template_file(t *testing.T) {
	t.Parallel()

	en := templating.Engine{}

	err := en.Expand(
		"/nonexistent/template.txt",
		"",
		nil,
		nil,
		false,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expanding template")
}

func TestExpand_variables_override_stamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stampPath := writeTemp(
		t, dir, "stamp.txt",
		"VERSION 1.0.0\n",
	)

	tplPath := writeTemp(
		t, dir, "tpl.txt",
		"version={{VERSION}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{
		StampInfoFiles: []string{stampPath},
	}

	// Stamp sets VERSION=1.0.0; variable overrides it.
	err := en.Expand(
		tplPath, outPath,
		[]string{"VERSION=2.0.0"},
		nil,
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "version=2.0.0", string(got))
}

func TestExpand_stamp_substitution_in_variable_values(
	t *testing.T,
) {
	t.Parallel()

	dir := t.TempDir()

	stampPath := writeTemp(
		t, dir, "stamp.txt",
		"BUILD_USER alice\n",
	)

	tplPath := writeTemp(
		t, dir, "tpl.txt",
		"author={{AUTHOR}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{
		StampInfoFiles: []string{stampPath},
	}

	// Variable value contains stamp reference with single-brace
	// tags.
	err := en.Expand(
		tplPath, outPath,
		[]string{"AUTHOR={BUILD_USER}"},
		nil,
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "author=alice", string(got))
}

func TestExpand_variables_prefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt",
		"{{variables.APP}}-{{APP}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{}

	err := en.Expand(
		tplPath, outPath,
		[]string{"APP=frontend"},
		nil,
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "frontend-frontend", string(got))
}

func TestExpand_imports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	importPath := writeTemp(
		t, dir, "header.txt",
		"# built for {{APP}}",
	)

	tplPath := writeTemp(
		t, dir, "tpl.txt",
		"{{imports.header}}\nbody",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{}

	err := en.Expand(
		tplPath, outPath,
		[]string{"APP=frontend"},
		[]string{"header=" + importPath},
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(
		t,
		"# built for frontend\nbody",
		string(got),
	)
}

func TestExpand_malformed_variable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(t, dir, "tpl.txt", "body")

	en := templating.Engine{}

	err := en.Expand(
		tplPath, filepath.Join(dir, "out.txt"),
		[]string{"NOVALUE"},
		nil,
		false,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving variables")
}

func TestExpand_lenient_missing_value(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt", "hello {{missing}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{}

	err := en.Expand(tplPath, outPath, nil, nil, false)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "hello ", string(got))
}

func TestExpand_strict_missing_value(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt", "hello {{missing}}",
	)

	outPath := filepath.Join(dir, "out.txt")

	en := templating.Engine{Strict: true}

	err := en.Expand(tplPath, outPath, nil, nil, false)
	require.Error(t, err)

	var pe *placeholder.PlaceholderError

	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "missing", pe.Name)

	// Transactional: nothing written on failure.
	assert.NoFileExists(t, outPath)
}

func TestExpand_skip_unchanged_preserves_mtime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt", "Hello {{name}}!",
	)

	outPath := writeTemp(
		t, dir, "out.txt", "Hello World!",
	)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(outPath, old, old))

	en := templating.Engine{SkipUnchanged: true}

	err := en.Expand(
		tplPath, outPath,
		[]string{"name=World"},
		nil,
		false,
	)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(
		t,
		info.ModTime().Before(time.Now().Add(-time.Minute)),
		"output file was rewritten despite identical content",
	)
}

func TestExpand_skip_unchanged_rewrites_stale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tplPath := writeTemp(
		t, dir, "tpl.txt", "Hello {{name}}!",
	)

	outPath := writeTemp(
		t, dir, "out.txt", "Hello Stale!",
	)

	en := templating.Engine{SkipUnchanged: true}

	err := en.Expand(
		tplPath, outPath,
		[]string{"name=World"},
		nil,
		false,
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(got))
}
