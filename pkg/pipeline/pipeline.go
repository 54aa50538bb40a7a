// Package pipeline runs an ordered list of commands with strict failure
// semantics: the first step that fails aborts the run, and its exit code is
// the run's exit code.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"sigs.k8s.io/yaml"
)

type Step struct {
	Name    string   `json:"name"`
	Command []string `json:"command"`
	Dir     string   `json:"dir,omitempty"`
	Env     []string `json:"env,omitempty"`
}

type Pipeline struct {
	Steps []Step `json:"steps"`
}

// Default returns the stock release pipeline: build, test, generate docs.
func Default() Pipeline {
	return Pipeline{
		Steps: []Step{
			{Name: "build", Command: []string{"cargo", "build"}},
			{Name: "test", Command: []string{"cargo", "test"}},
			{Name: "doc", Command: []string{"cargo", "doc", "--no-deps"}},
		},
	}
}

// Load reads a pipeline from a YAML file.  Unknown fields are rejected, as
// are empty pipelines, unnamed or duplicate steps, and empty commands.
func Load(filename string) (Pipeline, error) {
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return Pipeline{}, err
	}
	var p Pipeline
	if err := yaml.Unmarshal(yamlBytes, &p, yaml.DisallowUnknownFields); err != nil {
		return Pipeline{}, fmt.Errorf("pipeline file %q: %w", filename, err)
	}
	if err := p.validate(); err != nil {
		return Pipeline{}, fmt.Errorf("pipeline file %q: %w", filename, err)
	}
	return p, nil
}

func (p Pipeline) validate() error {
	if len(p.Steps) == 0 {
		return errors.New("no steps")
	}
	seen := make(map[string]bool, len(p.Steps))
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: missing name", i)
		}
		if seen[step.Name] {
			return fmt.Errorf("step %q: duplicate name", step.Name)
		}
		seen[step.Name] = true
		if len(step.Command) == 0 {
			return fmt.Errorf("step %q: empty command", step.Name)
		}
	}
	return nil
}

// Select returns the sub-pipeline containing just the named steps, in
// pipeline order (not argument order).  Naming an unknown step is an error.
func (p Pipeline) Select(names []string) (Pipeline, error) {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	var ret Pipeline
	for _, step := range p.Steps {
		if want[step.Name] {
			ret.Steps = append(ret.Steps, step)
			delete(want, step.Name)
		}
	}
	for name := range want {
		return Pipeline{}, fmt.Errorf("no such step: %q", name)
	}
	return ret, nil
}

// A StepError reports the step that aborted a run.  ExitCode is the step
// command's exit code, or 1 if the command died on a signal or never started.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Run executes the steps in order.  Each step inherits this process's stdout
// and stderr, plus any step-specific environment entries.  The first failure
// stops the run and is returned as a *StepError; steps after it do not run.
func (p Pipeline) Run(ctx context.Context) error {
	for _, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		dlog.Infof(ctx, "step %q: %q", step.Name, step.Command)

		cmd := dexec.CommandContext(ctx, step.Command[0], step.Command[1:]...)
		cmd.Dir = step.Dir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if len(step.Env) > 0 {
			cmd.Env = append(os.Environ(), step.Env...)
		}

		if err := cmd.Run(); err != nil {
			code := 1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
				code = exitErr.ExitCode()
			}
			return &StepError{
				Step:     step.Name,
				ExitCode: code,
				Err:      err,
			}
		}
	}
	return nil
}
