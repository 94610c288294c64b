// Package config defines core configuration types for livemd.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

// Mode selects how much syntax a render pass hides.
type Mode string

const (
	ModeLive    Mode = "live"
	ModeSource  Mode = "source"
	ModeReading Mode = "reading"
)

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	switch m {
	case ModeLive, ModeSource, ModeReading:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how the CLI prints a render result.
type OutputFormat string

const (
	// FormatText prints the transformed text only.
	FormatText OutputFormat = "text"
	// FormatStyled paints the transformed text with its styles.
	FormatStyled OutputFormat = "styled"
	// FormatJSON prints text, styles and the source as JSON.
	FormatJSON OutputFormat = "json"
	// FormatDiff prints a unified diff of the change.
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatStyled, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// ColorMode controls terminal colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// RenderConfig configures render passes.
type RenderConfig struct {
	// Mode is the default render mode.
	Mode Mode `yaml:"mode,omitempty" toml:"mode,omitempty"`

	// BulletGlyph replaces unordered list bullets.
	BulletGlyph string `yaml:"bullet_glyph,omitempty" toml:"bullet_glyph,omitempty"`

	// HashtagPadding pads hashtags with spaces instead of hiding '#'.
	HashtagPadding *bool `yaml:"hashtag_padding,omitempty" toml:"hashtag_padding,omitempty"`

	// DetectLanguage labels unlabelled code blocks by their content.
	DetectLanguage *bool `yaml:"detect_language,omitempty" toml:"detect_language,omitempty"`
}

// EditConfig configures the editing actions.
type EditConfig struct {
	// CalloutType is written when applying a callout.
	CalloutType string `yaml:"callout_type,omitempty" toml:"callout_type,omitempty"`

	// CodeLanguage is written when fencing a code block.
	CodeLanguage string `yaml:"code_language,omitempty" toml:"code_language,omitempty"`

	// Indent is the text of one indentation level.
	Indent string `yaml:"indent,omitempty" toml:"indent,omitempty"`
}

// BackupsConfig controls backup behavior when writing notes.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Suffix  string `yaml:"suffix,omitempty" toml:"suffix,omitempty"`
}

// ExportConfig configures HTML export.
type ExportConfig struct {
	// Title is the document title; empty uses the first heading.
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`

	// Standalone wraps the body in an HTML document.
	Standalone *bool `yaml:"standalone,omitempty" toml:"standalone,omitempty"`

	// LinkSuffix is appended to internal link destinations.
	LinkSuffix string `yaml:"link_suffix,omitempty" toml:"link_suffix,omitempty"`
}

// VaultConfig configures note discovery for vault-wide commands.
type VaultConfig struct {
	// Ignore lists glob patterns of notes and folders to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Jobs is the number of notes processed concurrently; 0 uses all CPUs.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// FollowSymlinks traverses symlinked folders.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`
}

// Config is the root configuration structure for livemd.
type Config struct {
	Render  RenderConfig  `yaml:"render,omitempty" toml:"render,omitempty"`
	Edit    EditConfig    `yaml:"edit,omitempty" toml:"edit,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty" toml:"export,omitempty"`
	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`
	Vault   VaultConfig   `yaml:"vault,omitempty" toml:"vault,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// LogFormat is one of text, json, logfmt.
	LogFormat string `yaml:"log_format,omitempty" toml:"log_format,omitempty"`

	// Color controls terminal colors.
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the render output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Write saves edits back to the note instead of printing them.
	Write bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Mode:           ModeLive,
			BulletGlyph:    "•",
			HashtagPadding: Bool(true),
			DetectLanguage: Bool(false),
		},
		Edit: EditConfig{
			CalloutType: "note",
			Indent:      "\t",
		},
		Export: ExportConfig{
			Standalone: Bool(true),
			LinkSuffix: ".html",
		},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Suffix:  ".bak",
		},
		Vault: VaultConfig{
			FollowSymlinks: Bool(false),
		},
		LogLevel:  "info",
		LogFormat: "text",
		Color:     ColorAuto,
		Format:    FormatText,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue returns *b, or fallback when b is nil.
func BoolValue(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
