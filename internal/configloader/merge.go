package configloader

import "github.com/yaklabco/livemd/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeString(&result.Render.BulletGlyph, override.Render.BulletGlyph)
	if override.Render.Mode != "" {
		result.Render.Mode = override.Render.Mode
	}
	mergeBool(&result.Render.HashtagPadding, override.Render.HashtagPadding)
	mergeBool(&result.Render.DetectLanguage, override.Render.DetectLanguage)

	mergeString(&result.Edit.CalloutType, override.Edit.CalloutType)
	mergeString(&result.Edit.CodeLanguage, override.Edit.CodeLanguage)
	mergeString(&result.Edit.Indent, override.Edit.Indent)

	mergeString(&result.Export.Title, override.Export.Title)
	mergeString(&result.Export.LinkSuffix, override.Export.LinkSuffix)
	mergeBool(&result.Export.Standalone, override.Export.Standalone)

	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)
	mergeString(&result.Backups.Suffix, override.Backups.Suffix)

	// Ignore patterns accumulate across layers.
	result.Vault.Ignore = append(result.Vault.Ignore, override.Vault.Ignore...)
	if override.Vault.Jobs != 0 {
		result.Vault.Jobs = override.Vault.Jobs
	}
	mergeBool(&result.Vault.FollowSymlinks, override.Vault.FollowSymlinks)

	mergeString(&result.LogLevel, override.LogLevel)
	mergeString(&result.LogFormat, override.LogFormat)
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// Write can only be switched on by a later layer.
	if override.Write {
		result.Write = true
	}

	return result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func mergeBool(dst **bool, value *bool) {
	if value != nil {
		*dst = config.Bool(*value)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
