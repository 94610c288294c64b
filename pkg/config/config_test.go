package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemd/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.ModeLive, cfg.Render.Mode)
	assert.Equal(t, "•", cfg.Render.BulletGlyph)
	assert.True(t, config.BoolValue(cfg.Render.HashtagPadding, false))
	assert.Equal(t, "note", cfg.Edit.CalloutType)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ModeReading.IsValid())
	assert.False(t, config.Mode("wysiwyg").IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Render.Mode = config.ModeReading
	cfg.Format = config.FormatJSON

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: reading")
	assert.NotContains(t, string(data), "json", "CLI-only fields are not persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.ModeReading, parsed.Render.Mode)
	assert.Equal(t, cfg.Render.BulletGlyph, parsed.Render.BulletGlyph)
	assert.True(t, config.BoolValue(parsed.Backups.Enabled, false))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	fromTOML, err := config.Decode("livemd.toml", []byte("log_level = \"debug\"\n\n[render]\nmode = \"source\"\nhashtag_padding = false\n"))
	require.NoError(t, err)
	assert.Equal(t, config.ModeSource, fromTOML.Render.Mode)
	assert.False(t, config.BoolValue(fromTOML.Render.HashtagPadding, true))
	assert.Equal(t, "debug", fromTOML.LogLevel)

	_, err = config.Decode("livemd.toml", []byte("[render]\nglyph = \"*\"\n"))
	require.Error(t, err)

	fromYAML, err := config.Decode(".livemd.yml", []byte("edit:\n  callout_type: tip\n"))
	require.NoError(t, err)
	assert.Equal(t, "tip", fromYAML.Edit.CalloutType)
	assert.Nil(t, fromYAML.Render.HashtagPadding)
}

func TestToTOML(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, config.ModeLive, parsed.Render.Mode)
	assert.Equal(t, ".bak", parsed.Backups.Suffix)
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	clone := cfg.Clone()
	*clone.Render.HashtagPadding = false
	clone.Render.Mode = config.ModeSource

	assert.True(t, *cfg.Render.HashtagPadding)
	assert.Equal(t, config.ModeLive, cfg.Render.Mode)
	assert.Nil(t, (*config.Config)(nil).Clone())
}
