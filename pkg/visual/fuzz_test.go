package visual_test

import (
	"testing"

	"github.com/yaklabco/livemd/pkg/parser/obsidian"
	"github.com/yaklabco/livemd/pkg/visual"
)

func FuzzTransform(f *testing.F) {
	seeds := []string{
		"**bold**",
		"# Title *x*",
		"> [!note] t\n> **b**",
		"- [[a|b]] #tag ^id",
		"[^1]: def\n\ntext[^1] ^[foot]",
		"```\ncode\n```",
		"%%\ncomment\n%%",
		"[x](y) ![[e]] `c` ~~s~~ ==h==",
	}
	for _, seed := range seeds {
		f.Add(seed, 0)
	}

	f.Fuzz(func(t *testing.T, source string, caret int) {
		tree := obsidian.Parse(source)
		result, err := visual.Transform(tree, visual.Caret(caret), visual.DefaultOptions())
		if err != nil {
			t.Fatalf("Transform(%q): %v", source, err)
		}
		if got := result.Mapper.OriginalToTransformed(len(source)); got != len(result.Text) {
			t.Fatalf("end of %q maps to %d, text has %d bytes", source, got, len(result.Text))
		}
		for _, style := range result.Styles {
			if style.Start >= style.End || style.End > len(result.Text) {
				t.Fatalf("style %+v out of range for %q", style, result.Text)
			}
		}
	})
}
