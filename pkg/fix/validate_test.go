package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr string
	}{
		{"valid", []fix.TextEdit{{StartOffset: 0, EndOffset: 5}}, ""},
		{"insertion at end", []fix.TextEdit{{StartOffset: 5, EndOffset: 5, NewText: "x"}}, ""},
		{"negative start", []fix.TextEdit{{StartOffset: -1, EndOffset: 2}}, "start offset is negative"},
		{"inverted", []fix.TextEdit{{StartOffset: 3, EndOffset: 2}}, "end offset is before start offset"},
		{"past end", []fix.TextEdit{{StartOffset: 0, EndOffset: 6}}, "exceeds content length 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, 5)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 4, EndOffset: 6},
		{StartOffset: 0, EndOffset: 0, NewText: "a"},
		{StartOffset: 0, EndOffset: 0, NewText: "b"},
		{StartOffset: 0, EndOffset: 2},
	}
	fix.SortEdits(edits)

	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 0, EndOffset: 0, NewText: "a"},
		{StartOffset: 0, EndOffset: 0, NewText: "b"},
		{StartOffset: 0, EndOffset: 2},
		{StartOffset: 4, EndOffset: 6},
	}, edits)
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	assert.NoError(t, fix.DetectConflicts([]fix.TextEdit{
		{StartOffset: 0, EndOffset: 2},
		{StartOffset: 2, EndOffset: 2, NewText: "x"},
		{StartOffset: 2, EndOffset: 4},
	}))
	assert.Error(t, fix.DetectConflicts([]fix.TextEdit{
		{StartOffset: 0, EndOffset: 3},
		{StartOffset: 1, EndOffset: 2},
	}))
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	original := []fix.TextEdit{{StartOffset: 3, EndOffset: 4}, {StartOffset: 0, EndOffset: 1}}
	prepared, err := fix.PrepareEdits(original, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, prepared[0].StartOffset)
	assert.Equal(t, 3, original[0].StartOffset, "input must not be reordered")

	empty, err := fix.PrepareEdits(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
