//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"te":  Test.Engine,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"fz":  Fuzz.Default,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
	Fuzz st.Namespace
	CI   st.Namespace
)

// binary is where Build writes livemd.
const binary = "bin/livemd"

// enginePackages hold the parser, the transformation and the edit layer.
var enginePackages = []string{
	"./pkg/mdast/...",
	"./pkg/parser/...",
	"./pkg/visual/...",
	"./pkg/assist/...",
	"./pkg/fix/...",
}

// Build compiles livemd with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building livemd...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/livemd")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install for the livemd command.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/livemd")
}

// Default runs every package under gotestsum.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "./...")
}

// Engine runs the parser, transformation and editing tests only.
func (Test) Engine() error {
	return gotestsum("testname", enginePackages...)
}

// Vault runs the discovery, vault index and CLI tests.
func (Test) Vault() error {
	return gotestsum("testname", "./pkg/runner/...", "./pkg/analysis/...", "./internal/cli/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when a file is not gofmt-clean.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// fuzzTargets lists the fuzz tests and the packages that hold them.
var fuzzTargets = []struct{ name, pkg string }{
	{"FuzzParse", "./pkg/parser/obsidian"},
	{"FuzzTransform", "./pkg/visual"},
	{"FuzzApplyEdits", "./pkg/fix"},
	{"FuzzWriteAtomic", "./pkg/notefile"},
}

// Default runs each fuzz test for FUZZ_TIME (default 30s).
func (Fuzz) Default() error {
	for _, ft := range fuzzTargets {
		if err := fuzz(ft.name, ft.pkg); err != nil {
			return err
		}
	}
	return nil
}

// Engine fuzzes the parser and the transformation only.
func (Fuzz) Engine() error {
	if err := fuzz("FuzzParse", "./pkg/parser/obsidian"); err != nil {
		return err
	}
	return fuzz("FuzzTransform", "./pkg/visual")
}

// Gate runs the checks a pull request must pass.
func (CI) Gate() error {
	st.SerialDeps(Lint.FmtCheck, Build, Test.Default, CI.ModTidy)
	return nil
}

// ModTidy fails when go mod tidy would change go.mod.
func (CI) ModTidy() error {
	before, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if string(before) != string(after) {
		return errors.New("go.mod is not tidy")
	}
	return nil
}

func fuzz(name, pkg string) error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	fmt.Printf("Fuzzing %s for %s...\n", name, fuzzTime)
	if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+name+"$", "-fuzztime="+fuzzTime, pkg); err != nil {
		return fmt.Errorf("fuzz %s: %w", name, err)
	}
	return nil
}

// gotestsum runs packages with race detection and coverage, parallelized
// by STAVE_NUM_PROCESSORS.
func gotestsum(format string, pkgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-race", "-p", procs, "-parallel", procs}
	args = append(args, pkgs...)
	args = append(args, "-coverprofile=coverage.out", "-covermode=atomic")
	return sh.RunV("go", args...)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
