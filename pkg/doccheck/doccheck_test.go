package doccheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaville/numtest/pkg/doccheck"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		filename := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0777))
		require.NoError(t, os.WriteFile(filename, []byte(body), 0666))
	}
	return dir
}

func TestCheckOK(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := writeTree(t, map[string]string{
		"index.html": `<html><head>
			<title>numtest documentation</title>
			<link rel="stylesheet" href="style.css">
		</head><body>
			<a href="api/index.html">API</a>
			<a href="https://example.com/">external</a>
			<a href="#top">fragment</a>
			<a href="mailto:dev@example.com">mail</a>
		</body></html>`,
		"style.css":      "body {}",
		"api/index.html": `<html><head><title>API</title></head><body><a href="../index.html">up</a></body></html>`,
	})

	report, err := doccheck.Check(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, "numtest documentation", report.Title)
	assert.True(t, report.OK())
}

func TestCheckDangling(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := writeTree(t, map[string]string{
		"index.html": `<html><head><title>docs</title></head><body>
			<a href="missing.html">gone</a>
			<img src="img/missing.png">
		</body></html>`,
	})

	report, err := doccheck.Check(ctx, dir)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, []string{
		"index.html: img/missing.png",
		"index.html: missing.html",
	}, report.Dangling)
}

func TestCheckEscapingReference(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	// outside.html exists on disk, but climbing out of the tree is still
	// dangling: it would not ship with the documentation.
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "outside.html"),
		[]byte(`<html><head><title>t</title></head></html>`), 0666))
	dir := filepath.Join(parent, "doc")
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<html><head><title>docs</title></head><body>
			<a href="../outside.html">escape</a>
		</body></html>`), 0666))

	report, err := doccheck.Check(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html: ../outside.html"}, report.Dangling)
}

func TestCheckBadTrees(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	t.Run("empty", func(t *testing.T) {
		_, err := doccheck.Check(ctx, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("no-entry-page", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"other.html": `<html><head><title>t</title></head></html>`,
		})
		_, err := doccheck.Check(ctx, dir)
		assert.Error(t, err)
	})

	t.Run("untitled-entry-page", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"index.html": `<html><head></head><body></body></html>`,
		})
		_, err := doccheck.Check(ctx, dir)
		assert.Error(t, err)
	})

	t.Run("missing-dir", func(t *testing.T) {
		_, err := doccheck.Check(ctx, filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}
