// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the extract, jsonld, and rdf stages in order. Each
// stage is a separate child process of the current binary, so a stage sees
// only the files the previous stage wrote.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// Stage names a pipeline stage. The value is also the CLI subcommand that
// runs it.
type Stage string

const (
	StageExtract Stage = "extract"
	StageJSONLD  Stage = "jsonld"
	StageRDF     Stage = "rdf"
)

// Stages is the fixed execution order.
var Stages = []Stage{StageExtract, StageJSONLD, StageRDF}

// StageError reports a stage that exited non-zero.
type StageError struct {
	Stage Stage
	Code  int
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s exited with code %d", e.Stage, e.Code)
}

// executor abstracts process execution for testing.
type executor interface {
	Executable() (string, error)
	// Run returns the process exit code. The error is non-nil only when the
	// process could not be started or waited on.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) Executable() (string, error) {
	return os.Executable()
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

var defaultExec = &osExecutor{}

// Options controls how stages are launched.
type Options struct {
	// ConfigFile is forwarded to each stage as --config when set.
	ConfigFile string
	// Verbose forwards --verbose to each stage.
	Verbose bool
	// Stdout and Stderr receive the child process streams. Stderr also
	// receives the driver's own progress lines.
	Stdout io.Writer
	Stderr io.Writer
}

// Driver launches the stages described by a pipeline config.
type Driver struct {
	cfg  types.PipelineConfig
	opts Options
	exec executor
}

// NewDriver creates a driver that runs stages through the current binary.
func NewDriver(cfg types.PipelineConfig, opts Options) *Driver {
	return newDriver(cfg, opts, defaultExec)
}

func newDriver(cfg types.PipelineConfig, opts Options, exec executor) *Driver {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	return &Driver{cfg: cfg, opts: opts, exec: exec}
}

// Run creates the output directory and runs every stage in order. It stops
// at the first stage that exits non-zero and returns a *StageError carrying
// that stage's exit code.
func (d *Driver) Run(ctx context.Context) error {
	outDir := d.cfg.Paths.OutputPath()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	bin, err := d.exec.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	for i, stage := range Stages {
		fmt.Fprintf(d.opts.Stderr, "[%d/%d] %s\n", i+1, len(Stages), stage)

		args := d.args(stage)
		slog.Debug("launching stage", "stage", stage, "bin", bin, "args", args)

		code, err := d.exec.Run(ctx, bin, args, d.opts.Stdout, d.opts.Stderr)
		if err != nil {
			return fmt.Errorf("running stage %s: %w", stage, err)
		}
		if code != 0 {
			return &StageError{Stage: stage, Code: code}
		}
	}

	fmt.Fprintf(d.opts.Stderr, "Pipeline complete, outputs in %s\n", outDir)
	return nil
}

func (d *Driver) args(stage Stage) []string {
	args := []string{string(stage)}
	if d.opts.ConfigFile != "" {
		args = append(args, "--config", d.opts.ConfigFile)
	}
	if d.opts.Verbose {
		args = append(args, "--verbose")
	}
	return args
}
