//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir   = "bin"
	ldflags  = "-s -w -X main.version="
	coverOut = "coverage.out"
)

// Default target when mage is run without arguments
var Default = Build

func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		return v
	}
	return "dev"
}

// Build compiles the server and dashctl into ./bin
func Build() error {
	flags := ldflags + version()
	for _, cmd := range []string{"server", "dashctl"} {
		out := filepath.Join(binDir, cmd)
		if err := sh.RunV("go", "build", "-ldflags", flags, "-o", out, "./cmd/"+cmd); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit tests with the race detector
func Test() error {
	args := []string{"test", "-race", "-coverprofile=" + coverOut}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	return sh.RunV("go", append(args, "./...")...)
}

// Integration runs the testcontainers suite; requires Docker
func Integration() error {
	mg.Deps(Test)
	return sh.RunV("go", "test", "-tags", "integration", "-count=1", "./tests/integration/...")
}

// Lint runs go vet and golangci-lint when installed
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("golangci-lint", "version"); err != nil {
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Swagger regenerates docs/ from the handler annotations
func Swagger() error {
	return sh.RunV("go", "run", "github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc5",
		"init", "-g", "cmd/server/main.go", "-o", "docs", "--parseInternal")
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	return sh.Rm(coverOut)
}
