package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/yaklabco/livemd/internal/cli"
	"github.com/yaklabco/livemd/pkg/notefile"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "livemd" {
		t.Errorf("expected Use to be 'livemd', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})

	expectedSubcommands := []string{
		"render", "tokens", "tree",
		"apply", "remove", "toggle", "indent", "outdent", "active",
		"export", "tags", "vault", "init", "migrate", "version",
	}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestEditCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})

	for _, name := range []string{"apply", "remove", "toggle", "indent", "outdent"} {
		editCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}

		for _, flagName := range []string{"selection", "format", "write", "force", "compact"} {
			if editCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	renderCmd, _, err := cmd.Find([]string{"render"})
	if err != nil {
		t.Fatalf("render command not found: %v", err)
	}

	for _, flagName := range []string{"cursor", "mode", "format", "show-cursor", "compact"} {
		if renderCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on render command", flagName)
		}
	}

	if err := renderCmd.Args(renderCmd, []string{"a.md", "b.md"}); err == nil {
		t.Error("render should accept at most one file")
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) {
		t.Errorf("expected version in output, got %q", out.String())
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: bad file", cli.ErrConfig), cli.ExitConfigError},
		{"not found", fmt.Errorf("load: %w", notefile.ErrNotFound), cli.ExitIOError},
		{"modified", notefile.ErrModified, cli.ExitIOError},
		{"path error", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, cli.ExitIOError},
		{"unresolved links", fmt.Errorf("%w: 2 in 3 notes", cli.ErrUnresolvedLinks), cli.ExitFailure},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHelpGroupsCommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	help := out.String()
	for _, want := range []string{
		"View Commands:", "Edit Commands:", "Vault Commands:", "Configuration Commands:",
		"Additional Commands:", "render", "vault", "--debug",
	} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("expected %q in help output:\n%s", want, help)
		}
	}
}

func TestSubcommandHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	cmd.SetArgs([]string{"vault", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "livemd vault [paths...]", "Examples:", "--strict", "Global Flags:", "--config string"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("expected %q in vault help:\n%s", want, out.String())
		}
	}
}

func TestVersionCommandJSON(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "2.0.0", Commit: "def456", Date: "2024-02-02"})
	cmd.SetArgs([]string{"version", "--format", "json"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	var report map[string]string
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if report["version"] != "2.0.0" || report["commit"] != "def456" || report["go"] == "" {
		t.Errorf("unexpected version report %v", report)
	}
}
