// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// mockExecutor records launched commands and returns configured exit codes.
type mockExecutor struct {
	exeErr error
	codes  map[Stage]int   // stage -> exit code
	errs   map[Stage]error // stage -> start failure
	calls  [][]string
}

func (m *mockExecutor) Executable() (string, error) {
	if m.exeErr != nil {
		return "", m.exeErr
	}
	return "/usr/local/bin/knowgrph", nil
}

func (m *mockExecutor) Run(_ context.Context, name string, args []string, stdout, _ io.Writer) (int, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	stage := Stage(args[0])
	if err := m.errs[stage]; err != nil {
		return -1, err
	}
	io.WriteString(stdout, string(stage)+" ran\n")
	return m.codes[stage], nil
}

func testConfig(t *testing.T) types.PipelineConfig {
	t.Helper()
	cfg := types.DefaultPipelineConfig()
	cfg.Paths.Root = t.TempDir()
	return cfg
}

func TestRunAllStages(t *testing.T) {
	cfg := testConfig(t)
	m := &mockExecutor{}
	var stdout, stderr bytes.Buffer

	d := newDriver(cfg, Options{Stdout: &stdout, Stderr: &stderr}, m)
	require.NoError(t, d.Run(context.Background()))

	require.Len(t, m.calls, 3)
	assert.Equal(t, []string{"/usr/local/bin/knowgrph", "extract"}, m.calls[0])
	assert.Equal(t, []string{"/usr/local/bin/knowgrph", "jsonld"}, m.calls[1])
	assert.Equal(t, []string{"/usr/local/bin/knowgrph", "rdf"}, m.calls[2])

	assert.Equal(t, "extract ran\njsonld ran\nrdf ran\n", stdout.String())
	assert.Contains(t, stderr.String(), "[1/3] extract")
	assert.Contains(t, stderr.String(), "[3/3] rdf")
	assert.Contains(t, stderr.String(), "Pipeline complete")

	info, err := os.Stat(filepath.Join(cfg.Paths.Root, "data", "outputs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunForwardsFlags(t *testing.T) {
	m := &mockExecutor{}
	d := newDriver(testConfig(t), Options{ConfigFile: "custom.yaml", Verbose: true}, m)
	require.NoError(t, d.Run(context.Background()))

	for _, call := range m.calls {
		assert.Equal(t, []string{"--config", "custom.yaml", "--verbose"}, call[2:])
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name      string
		codes     map[Stage]int
		wantStage Stage
		wantCode  int
		wantCalls int
	}{
		{
			name:      "extract fails",
			codes:     map[Stage]int{StageExtract: 2, StageRDF: 5},
			wantStage: StageExtract,
			wantCode:  2,
			wantCalls: 1,
		},
		{
			name:      "jsonld fails",
			codes:     map[Stage]int{StageJSONLD: 1},
			wantStage: StageJSONLD,
			wantCode:  1,
			wantCalls: 2,
		},
		{
			name:      "rdf fails",
			codes:     map[Stage]int{StageRDF: 3},
			wantStage: StageRDF,
			wantCode:  3,
			wantCalls: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockExecutor{codes: tt.codes}
			err := newDriver(testConfig(t), Options{}, m).Run(context.Background())
			require.Error(t, err)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, tt.wantStage, stageErr.Stage)
			assert.Equal(t, tt.wantCode, stageErr.Code)
			assert.Len(t, m.calls, tt.wantCalls)
		})
	}
}

func TestRunStartFailure(t *testing.T) {
	m := &mockExecutor{errs: map[Stage]error{StageJSONLD: errors.New("exec format error")}}
	err := newDriver(testConfig(t), Options{}, m).Run(context.Background())
	require.Error(t, err)

	var stageErr *StageError
	assert.False(t, errors.As(err, &stageErr))
	assert.True(t, strings.Contains(err.Error(), "jsonld"))
	assert.Len(t, m.calls, 2)
}

func TestRunExecutableMissing(t *testing.T) {
	m := &mockExecutor{exeErr: errors.New("no binary")}
	err := newDriver(testConfig(t), Options{}, m).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestOSExecutorExitCode(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	o := &osExecutor{}

	code, err := o.Run(context.Background(), "/bin/sh", []string{"-c", "exit 4"}, io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 4, code)

	code, err = o.Run(context.Background(), "/bin/sh", []string{"-c", "exit 0"}, io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	_, err = o.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestStageErrorMessage(t *testing.T) {
	err := &StageError{Stage: StageRDF, Code: 7}
	assert.Equal(t, "stage rdf exited with code 7", err.Error())
}
