package configloader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gobwas/glob"

	"github.com/yaklabco/livemd/internal/logging"
	"github.com/yaklabco/livemd/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "render.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Render.Mode != "" && !cfg.Render.Mode.IsValid() {
		addError("render.mode", cfg.Render.Mode,
			"invalid mode %q; must be one of: live, source, reading", cfg.Render.Mode)
	}
	if strings.ContainsAny(cfg.Render.BulletGlyph, "\r\n") {
		addError("render.bullet_glyph", cfg.Render.BulletGlyph, "bullet glyph must not contain a line break")
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		addError("format", cfg.Format, "invalid format %q; must be one of: text, styled, json, diff", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		addError("log_level", cfg.LogLevel, "%v", err)
	}
	if _, err := logging.ParseFormat(cfg.LogFormat); err != nil {
		addError("log_format", cfg.LogFormat, "%v", err)
	}
	if cfg.Edit.CalloutType != "" && !isCalloutType(cfg.Edit.CalloutType) {
		addError("edit.callout_type", cfg.Edit.CalloutType,
			"invalid callout type %q; use letters, digits, '-' or '_'", cfg.Edit.CalloutType)
	}
	if strings.TrimLeft(cfg.Edit.Indent, " \t") != "" {
		addError("edit.indent", cfg.Edit.Indent, "indent may only contain spaces and tabs")
	}
	if cfg.Vault.Jobs < 0 {
		addError("vault.jobs", cfg.Vault.Jobs, "jobs must not be negative")
	}
	for _, pattern := range cfg.Vault.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			addError("vault.ignore", pattern, "invalid glob %q: %v", pattern, err)
		}
	}

	if cfg.Edit.CodeLanguage != "" && strings.ContainsFunc(cfg.Edit.CodeLanguage, unicode.IsSpace) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "edit.code_language",
			Value:   cfg.Edit.CodeLanguage,
			Message: "code language contains whitespace; only the first word labels the block",
		})
	}
	if cfg.Backups.Suffix != "" && !strings.HasPrefix(cfg.Backups.Suffix, ".") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups.suffix",
			Value:   cfg.Backups.Suffix,
			Message: "backup suffix does not start with '.'",
		})
	}

	return result
}

func isCalloutType(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
