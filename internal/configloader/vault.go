package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/livemd/pkg/config"
)

// vaultSettingsFile is the editor settings file of an Obsidian vault.
const vaultSettingsFile = "app.json"

const defaultVaultTabSize = 4

// vaultSettings are the editor settings of app.json that affect rendering
// or editing. Pointers distinguish unset keys from zero values.
type vaultSettings struct {
	UseTab          *bool   `json:"useTab"`
	TabSize         *int    `json:"tabSize"`
	LivePreview     *bool   `json:"livePreview"`
	DefaultViewMode *string `json:"defaultViewMode"`
}

// unsupportedVaultSettings have no livemd equivalent when enabled.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsupportedVaultSettings = map[string]string{
	"strictLineBreaks": "single line breaks are always kept",
	"foldHeading":      "folding is not supported",
	"foldIndent":       "folding is not supported",
	"spellcheck":       "spellchecking is not supported",
}

// MigrationResult holds a converted configuration and the settings that
// could not be carried over.
type MigrationResult struct {
	Config   *config.Config
	Warnings []string
}

// FindVaultSettings searches startDir and its parents for .obsidian/app.json
// and returns its path, or "" if there is none.
func FindVaultSettings(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ".obsidian", vaultSettingsFile)
		if fileExists(path) {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ConvertVaultSettings reads an Obsidian app.json and returns the matching
// livemd configuration. Only settings that differ from livemd's defaults
// are set.
func ConvertVaultSettings(path string) (*MigrationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vault settings: %w", err)
	}

	var settings vaultSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &MigrationResult{Config: &config.Config{}}
	cfg := result.Config

	switch {
	case settings.DefaultViewMode != nil && *settings.DefaultViewMode == "preview":
		cfg.Render.Mode = config.ModeReading
	case settings.LivePreview != nil && !*settings.LivePreview:
		cfg.Render.Mode = config.ModeSource
	}

	if settings.UseTab != nil && !*settings.UseTab {
		size := defaultVaultTabSize
		if settings.TabSize != nil && *settings.TabSize > 0 {
			size = *settings.TabSize
		}
		cfg.Edit.Indent = strings.Repeat(" ", size)
	}

	keys := make([]string, 0, len(unsupportedVaultSettings))
	for key := range unsupportedVaultSettings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if enabled, ok := raw[key].(bool); ok && enabled {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: not migrated, %s", key, unsupportedVaultSettings[key]))
		}
	}

	return result, nil
}
