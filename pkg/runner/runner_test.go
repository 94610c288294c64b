package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/notefile"
	"github.com/yaklabco/livemd/pkg/runner"
)

func firstLine(_ context.Context, note *notefile.Note) (string, error) {
	line, _, _ := strings.Cut(note.Content, "\n")
	return line, nil
}

func TestRun_OrderedOutcomes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeVault(t, dir, []string{"c.md", "a.md", "b/d.md", "b/e.md"})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
	}, firstLine)
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{FilesDiscovered: 4, FilesProcessed: 4}, result.Stats)
	assert.False(t, result.HasErrors())
	assert.Equal(t, []string{"# a.md", "# b/d.md", "# b/e.md", "# c.md"}, result.Values())

	for i, outcome := range result.Notes {
		assert.True(t, filepath.IsAbs(outcome.Path))
		if i > 0 {
			assert.Less(t, result.Notes[i-1].Path, outcome.Path)
		}
	}
}

func TestRun_TaskErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeVault(t, dir, []string{"good.md", "bad.md"})

	errBad := errors.New("bad note")
	task := func(ctx context.Context, note *notefile.Note) (int, error) {
		if filepath.Base(note.Path) == "bad.md" {
			return 1, errBad
		}
		return len(note.Content), nil
	}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir}, task)
	require.NoError(t, err)

	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	require.Len(t, result.Notes, 2)

	bad := result.Notes[0]
	assert.Equal(t, "bad.md", filepath.Base(bad.Path))
	require.ErrorIs(t, bad.Error, errBad)
	assert.Contains(t, bad.Error.Error(), "bad.md")
	assert.Zero(t, bad.Value)

	assert.Equal(t, []int{len("# good.md\n")}, result.Values())
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()}, firstLine)
	require.NoError(t, err)
	assert.Empty(t, result.Notes)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Values())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeVault(t, dir, []string{"a.md", "b.md"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir}, firstLine)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result[string]
	assert.False(t, result.HasErrors())
	assert.Nil(t, result.Values())
}
