package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/livemd/pkg/parser/obsidian"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	source := "# Project **Plan** #work\n" +
		"\n" +
		"See [[Home]] and [[Roadmap#Q1|the roadmap]] #Idea\n" +
		"![[diagram.png]]\n" +
		"A key point ^key1\n" +
		"%% [[Hidden]] #secret %%\n" +
		"## Next\n"

	facts := Collect("/vault/Plan.md", obsidian.Parse(source))

	assert.Equal(t, "/vault/Plan.md", facts.Path)
	assert.Equal(t, []string{"Project Plan", "Next"}, facts.Headings)
	assert.Equal(t, []string{"key1"}, facts.BlockIDs)
	assert.Equal(t, []string{"work", "Idea"}, facts.Tags)
	assert.Equal(t, []Link{
		{Target: "Home", Line: 3},
		{Target: "Roadmap#Q1", Line: 3},
		{Target: "diagram.png", Embed: true, Line: 4},
	}, facts.Links)
}

func TestCollect_NilTree(t *testing.T) {
	t.Parallel()

	facts := Collect("a.md", nil)
	assert.Equal(t, NoteFacts{Path: "a.md"}, facts)
}

func TestIsAsset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"image.png", true},
		{"docs/Report.PDF", true},
		{"Note", false},
		{"Note.md", false},
		{"Meeting 2024.01 notes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isAsset(tt.name))
		})
	}
}
