package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/livemd/pkg/config"
)

// envVarPrefix is the prefix for all livemd environment variables.
const envVarPrefix = "LIVEMD_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MODE":            {field: "render.mode", typ: envTypeString, description: "Render mode: live, source, or reading"},
	"BULLET_GLYPH":    {field: "render.bullet_glyph", typ: envTypeString, description: "Glyph replacing unordered list bullets"},
	"HASHTAG_PADDING": {field: "render.hashtag_padding", typ: envTypeBool, description: "Pad hashtags instead of hiding '#': true or false"},
	"DETECT_LANGUAGE": {field: "render.detect_language", typ: envTypeBool, description: "Detect unlabelled code block languages: true or false"},
	"CALLOUT_TYPE":    {field: "edit.callout_type", typ: envTypeString, description: "Callout type written by apply"},
	"CODE_LANGUAGE":   {field: "edit.code_language", typ: envTypeString, description: "Language written when fencing code"},
	"INDENT":          {field: "edit.indent", typ: envTypeString, description: "Text of one indentation level"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Keep a backup when writing notes: true or false"},
	"FOLLOW_SYMLINKS": {field: "vault.follow_symlinks", typ: envTypeBool, description: "Traverse symlinked vault folders: true or false"},
	"LOG_LEVEL":       {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"LOG_FORMAT":      {field: "log_format", typ: envTypeString, description: "Log format: text, json, or logfmt"},
	"COLOR":           {field: "color", typ: envTypeString, description: "Color output: auto, always, or never"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Render output: text, styled, json, or diff"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with LIVEMD_ (e.g., LIVEMD_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "render.mode":
		cfg.Render.Mode = config.Mode(value)
	case "render.bullet_glyph":
		cfg.Render.BulletGlyph = value
	case "edit.callout_type":
		cfg.Edit.CalloutType = value
	case "edit.code_language":
		cfg.Edit.CodeLanguage = value
	case "edit.indent":
		cfg.Edit.Indent = value
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "render.hashtag_padding":
		cfg.Render.HashtagPadding = config.Bool(value)
	case "render.detect_language":
		cfg.Render.DetectLanguage = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "vault.follow_symlinks":
		cfg.Vault.FollowSymlinks = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
