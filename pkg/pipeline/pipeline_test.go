package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaville/numtest/pkg/pipeline"
)

func touchStep(name, dir string) pipeline.Step {
	return pipeline.Step{
		Name:    name,
		Command: []string{"touch", filepath.Join(dir, name)},
	}
}

func assertRan(t *testing.T, dir, name string, ran bool) {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, name))
	if ran {
		assert.NoError(t, err, "step %q should have run", name)
	} else {
		assert.True(t, os.IsNotExist(err), "step %q should not have run", name)
	}
}

func TestRunSuccess(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		touchStep("build", dir),
		touchStep("test", dir),
		touchStep("doc", dir),
	}}
	require.NoError(t, p.Run(ctx))
	assertRan(t, dir, "build", true)
	assertRan(t, dir, "test", true)
	assertRan(t, dir, "doc", true)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		touchStep("build", dir),
		{Name: "test", Command: []string{"sh", "-c", "exit 7"}},
		touchStep("doc", dir),
	}}

	err := p.Run(ctx)
	require.Error(t, err)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "test", stepErr.Step)
	assert.Equal(t, 7, stepErr.ExitCode)

	assertRan(t, dir, "build", true)
	assertRan(t, dir, "doc", false)
}

func TestRunCanceledBeforeStep(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(dlog.NewTestContext(t, false))
	cancel()
	dir := t.TempDir()

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		touchStep("build", dir),
	}}
	err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assertRan(t, dir, "build", false)
}

func TestRunCanceledMidStep(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(dlog.NewTestContext(t, false), 100*time.Millisecond)
	defer cancel()
	dir := t.TempDir()

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		{Name: "hang", Command: []string{"sleep", "30"}},
		touchStep("doc", dir),
	}}

	start := time.Now()
	err := p.Run(ctx)
	require.Error(t, err)
	// the hanging step was killed, not waited out
	assert.Less(t, time.Since(start), 10*time.Second)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "hang", stepErr.Step)
	assert.Equal(t, 1, stepErr.ExitCode)
	assertRan(t, dir, "doc", false)
}

func TestRunCommandNotFound(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		{Name: "build", Command: []string{"/no/such/binary"}},
	}}

	err := p.Run(ctx)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "build", stepErr.Step)
	assert.Equal(t, 1, stepErr.ExitCode)
}

func TestRunStepDirAndEnv(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()

	p := pipeline.Pipeline{Steps: []pipeline.Step{
		{
			Name:    "mark",
			Command: []string{"sh", "-c", `touch "$MARKER"`},
			Dir:     dir,
			Env:     []string{"MARKER=marker"},
		},
	}}
	require.NoError(t, p.Run(ctx))
	assertRan(t, dir, "marker", true)
}

func TestDefault(t *testing.T) {
	t.Parallel()
	p := pipeline.Default()
	require.Len(t, p.Steps, 3)
	assert.Equal(t, "build", p.Steps[0].Name)
	assert.Equal(t, "test", p.Steps[1].Name)
	assert.Equal(t, "doc", p.Steps[2].Name)
	assert.Equal(t, []string{"cargo", "doc", "--no-deps"}, p.Steps[2].Command)
}

func TestSelect(t *testing.T) {
	t.Parallel()
	p := pipeline.Default()

	sub, err := p.Select([]string{"doc", "build"})
	require.NoError(t, err)
	// pipeline order, not argument order
	require.Len(t, sub.Steps, 2)
	assert.Equal(t, "build", sub.Steps[0].Name)
	assert.Equal(t, "doc", sub.Steps[1].Name)

	_, err = p.Select([]string{"bogus"})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	writeFile := func(t *testing.T, body string) string {
		t.Helper()
		filename := filepath.Join(t.TempDir(), "pipeline.yml")
		require.NoError(t, os.WriteFile(filename, []byte(body), 0666))
		return filename
	}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		p, err := pipeline.Load(writeFile(t, `
steps:
  - name: build
    command: [cargo, build]
  - name: test
    command: [cargo, test]
    env: [RUST_BACKTRACE=1]
`))
		require.NoError(t, err)
		require.Len(t, p.Steps, 2)
		assert.Equal(t, []string{"cargo", "build"}, p.Steps[0].Command)
		assert.Equal(t, []string{"RUST_BACKTRACE=1"}, p.Steps[1].Env)
	})

	t.Run("unknown-field", func(t *testing.T) {
		t.Parallel()
		_, err := pipeline.Load(writeFile(t, `
steps:
  - name: build
    command: [cargo, build]
    retries: 3
`))
		assert.Error(t, err)
	})

	t.Run("no-steps", func(t *testing.T) {
		t.Parallel()
		_, err := pipeline.Load(writeFile(t, `steps: []`))
		assert.Error(t, err)
	})

	t.Run("duplicate-step", func(t *testing.T) {
		t.Parallel()
		_, err := pipeline.Load(writeFile(t, `
steps:
  - name: build
    command: [cargo, build]
  - name: build
    command: [cargo, build]
`))
		assert.Error(t, err)
	})

	t.Run("empty-command", func(t *testing.T) {
		t.Parallel()
		_, err := pipeline.Load(writeFile(t, `
steps:
  - name: build
    command: []
`))
		assert.Error(t, err)
	})

	t.Run("missing-file", func(t *testing.T) {
		t.Parallel()
		_, err := pipeline.Load(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}
