//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gomdmark"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"cm":  Test.CommonMark,
	"l":   Lint.Default,
	"c":   Check,
	"z":   Fuzz,
	"bc":  Bench.Corpus,
	"fmt": Lint.Fmt,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/gomdmark when any Go source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gomdmark")
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gomdmark")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Gate is the CI entry point: nothing is rewritten, everything must pass.
func Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.CI, Build, Test.Default, Test.CommonMark)
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

// fuzzTargets are run by Fuzz, one after another.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/micromark", "FuzzDocument"},
	{"./pkg/micromark", "FuzzPreprocess"},
	{"./pkg/markdown", "FuzzParse"},
	{"./pkg/markdown", "FuzzStream"},
	{"./pkg/fsutil", "FuzzWriteAtomicFunc"},
}

// Fuzz runs each fuzz test for FUZZ_TIME (default 10s).
func Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "10s")
	for _, ft := range fuzzTargets {
		fmt.Printf("fuzz %s %s (%s)\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime", fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("%s: %w", ft.name, err)
		}
	}
	return nil
}

// Default runs the race-enabled test suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// CommonMark runs the plain CommonMark tests and the goldmark cross-check,
// listing each test.
func (Test) CommonMark() error {
	return gotestsum("testname", "-run", "CommonMark|Goldmark", "./pkg/markdown/")
}

// Default runs golangci-lint with fixes applied.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without fixes.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when a Go file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed:\n%s", out)
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Corpus times the built binary on every Markdown file under BENCH_CORPUS
// (default "."), bypassing the cache.
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("BENCH_CORPUS"), ".")
	start := time.Now()
	if err := sh.RunV(binary, "parse", "--no-cache", "--format", "summary", dir); err != nil {
		return err
	}
	fmt.Println("corpus parsed in", time.Since(start).Round(time.Millisecond))
	return nil
}

// gotestsum runs go test through the gotestsum tool with the given format.
func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmd := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs}, args...)
	return sh.RunV("go", cmd...)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build time into main.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
