package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/livemd/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Render.Mode != config.ModeLive {
		t.Errorf("expected mode %q, got %q", config.ModeLive, result.Config.Render.Mode)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".livemd.yml"), `
render:
  mode: source
  hashtag_padding: false
edit:
  callout_type: warning
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Render.Mode != config.ModeSource {
		t.Errorf("expected mode %q, got %q", config.ModeSource, cfg.Render.Mode)
	}
	if config.BoolValue(cfg.Render.HashtagPadding, true) {
		t.Error("expected hashtag padding to be disabled")
	}
	if cfg.Edit.CalloutType != "warning" {
		t.Errorf("expected callout type warning, got %q", cfg.Edit.CalloutType)
	}
	if cfg.Render.BulletGlyph != "•" {
		t.Errorf("expected default glyph to survive, got %q", cfg.Render.BulletGlyph)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".obsidian"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "daily", "2026")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".livemd.toml"), "[render]\nbullet_glyph = \"◦\"\n")

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Render.BulletGlyph != "◦" {
		t.Errorf("expected glyph from vault root, got %q", result.Config.Render.BulletGlyph)
	}
	if !strings.HasSuffix(result.Paths.Project, ".livemd.toml") {
		t.Errorf("unexpected project path %q", result.Paths.Project)
	}
}

func TestFindProjectConfig_StopsAtVaultRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".livemd.yml"), "log_level: debug\n")
	vault := filepath.Join(root, "vault")
	if err := os.MkdirAll(filepath.Join(vault, ".obsidian"), 0755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), vault)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at vault root, found %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".livemd.yml"), "log_level: warn\n")
	customPath := filepath.Join(tmpDir, "custom.toml")
	writeFile(t, customPath, "log_level = \"debug\"\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LogLevel != "debug" {
		t.Errorf("expected explicit config to win, got %q", result.Config.LogLevel)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".livemd.yml"), "render:\n  mode: source\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Render: config.RenderConfig{Mode: config.ModeReading},
		Format: config.FormatJSON,
		Write:  true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Render.Mode != config.ModeReading {
		t.Errorf("expected mode %q (CLI override), got %q", config.ModeReading, result.Config.Render.Mode)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", result.Config.Format)
	}
	if !result.Config.Write {
		t.Error("expected write true (CLI override)")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LIVEMD_MODE", "reading")
	t.Setenv("LIVEMD_HASHTAG_PADDING", "0")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Render.Mode != config.ModeReading {
		t.Errorf("expected mode from env, got %q", result.Config.Render.Mode)
	}
	if config.BoolValue(result.Config.Render.HashtagPadding, true) {
		t.Error("expected hashtag padding disabled from env")
	}
}

func TestLoad_EnvInvalidBool(t *testing.T) {
	t.Setenv("LIVEMD_DETECT_LANGUAGE", "perhaps")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "mode", file: ".livemd.yml", content: "render:\n  mode: wysiwyg\n"},
		{name: "log level", file: ".livemd.yml", content: "log_level: loud\n"},
		{name: "indent", file: ".livemd.yml", content: "edit:\n  indent: \"xx\"\n"},
		{name: "callout type", file: ".livemd.yml", content: "edit:\n  callout_type: \"a b\"\n"},
		{name: "negative jobs", file: ".livemd.toml", content: "[vault]\njobs = -2\n"},
		{name: "unknown toml key", file: ".livemd.toml", content: "[render]\nglyph = \"-\"\n"},
		{name: "broken yaml", file: ".livemd.yml", content: "render: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, tt.file), tt.content)

			if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".livemd.yml"), "backups:\n  suffix: orig\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "backups.suffix") {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	file := &config.Config{Render: config.RenderConfig{DetectLanguage: config.Bool(true)}}
	cli := &config.Config{Render: config.RenderConfig{HashtagPadding: config.Bool(false)}}

	merged := MergeAll(base, file, cli)

	if !config.BoolValue(merged.Render.DetectLanguage, false) {
		t.Error("expected detect_language from file layer")
	}
	if config.BoolValue(merged.Render.HashtagPadding, true) {
		t.Error("expected hashtag_padding from cli layer")
	}
	if !*base.Render.HashtagPadding {
		t.Error("merge must not mutate the base config")
	}
	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestMergeAll_Vault(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	user := &config.Config{Vault: config.VaultConfig{Ignore: []string{"templates"}, Jobs: 2}}
	project := &config.Config{Vault: config.VaultConfig{Ignore: []string{"archive/**"}, FollowSymlinks: config.Bool(true)}}

	merged := MergeAll(base, user, project)

	if got := strings.Join(merged.Vault.Ignore, ","); got != "templates,archive/**" {
		t.Errorf("ignore = %q, want accumulated patterns", got)
	}
	if merged.Vault.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", merged.Vault.Jobs)
	}
	if !config.BoolValue(merged.Vault.FollowSymlinks, false) {
		t.Error("expected follow_symlinks from project layer")
	}
	if len(user.Vault.Ignore) != 1 {
		t.Error("merge must not mutate an input layer")
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	for _, name := range []string{".livemd.yml", ".livemd.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			if err := WriteConfig(config.NewConfig(), path, false); err != nil {
				t.Fatalf("WriteConfig() error = %v", err)
			}
			if err := WriteConfig(config.NewConfig(), path, false); err == nil {
				t.Error("expected error when file exists")
			}
			if err := WriteConfig(config.NewConfig(), path, true); err != nil {
				t.Errorf("WriteConfig(force) error = %v", err)
			}

			cfg, err := loadConfigFile(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if cfg.Render.Mode != config.ModeLive {
				t.Errorf("expected mode live after reload, got %q", cfg.Render.Mode)
			}
		})
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["LIVEMD_MODE"]; !ok {
		t.Error("expected LIVEMD_MODE in env var list")
	}
	if got := GetEnvVarName("render.bullet_glyph"); got != "LIVEMD_BULLET_GLYPH" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
}
