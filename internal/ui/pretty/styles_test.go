package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/internal/ui/pretty"
	"github.com/yaklabco/livemd/pkg/visual"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	assert.True(t, styles.ColorEnabled())
	assert.Equal(t, "monokai", styles.CodeTheme)
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)
	assert.False(t, styles.ColorEnabled())

	// With color disabled, styles should return unmodified text
	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Headings[0].Render(text), "No-color heading should not add formatting")
	assert.Equal(t, text, styles.ForTag(visual.TagHighlight).Render(text))
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode with non-TTY should return false (auto behavior)")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode with non-TTY should return false (auto behavior)")
}

func TestStyles_ForTag(t *testing.T) {
	styles := pretty.NewStyles(true)

	assert.Equal(t, styles.Headings[2], styles.ForTag(visual.HeadingTag(3)))
	assert.Equal(t, styles.Link, styles.ForTag(visual.TagInternalLink))
	assert.Equal(t, styles.Link, styles.ForTag(visual.TagInlineLink))
	assert.Equal(t, styles.Comment, styles.ForTag(visual.TagCommentBlock))
	assert.Equal(t, styles.Markup, styles.ForTag(visual.TagMarkup))
}
