//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

const (
	binaryName   = "file-report"
	smokeDir     = "smoke-logs"
	coverProfile = "coverage.out"
)

// Build builds the binary
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", binaryName, "./cmd/"+binaryName)
}

// Test runs all tests, including the ginkgo report suite
func Test() error {
	fmt.Println("Running tests...")
	return sh.Run("go", "test", "-race", "-shuffle=on", "-coverprofile="+coverProfile, "./...")
}

// Lint lints the codebase
func Lint() error {
	fmt.Println("Linting...")
	return run(context.Background(), "golangci-lint", "run", "-c", ".golangci.yml", "./...")
}

// Fmt formats the code
func Fmt() error {
	fmt.Println("Formatting code...")
	if err := sh.Run("gofmt", "-s", "-w", "."); err != nil {
		return err
	}
	return sh.Run("goimports", "-w", ".")
}

// Check runs fmt, lint and test
func Check() error {
	mg.SerialDeps(Fmt, Lint, Test)
	return nil
}

// Coverage runs the tests and prints per-function coverage
func Coverage() error {
	mg.Deps(Test)
	return run(context.Background(), "go", "tool", "cover", "-func="+coverProfile)
}

// Smoke builds the binary, reports on the repository's own internal/ tree
// and prints the resulting log
func Smoke() error {
	mg.Deps(Build)
	fmt.Println("Running smoke report...")
	err := run(context.Background(), "./"+binaryName, "report", "internal", "smoke.txt",
		"--output-dir", smokeDir, "--relative", "--pattern", "**/*.go")
	if err != nil {
		return err
	}

	log, err := os.ReadFile(filepath.Join(smokeDir, "integrity_log.txt"))
	if err != nil {
		return err
	}

	fmt.Print(string(log))
	return nil
}

// Clean removes build artifacts and smoke output
func Clean() error {
	fmt.Println("Cleaning...")
	for _, path := range []string{binaryName, smokeDir, coverProfile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
