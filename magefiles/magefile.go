//go:build mage

// Package main provides build targets for the dynobj module using Mage.
//
// Usage:
//
//	mage test           Run all tests
//	mage testUnit       Run tests of the public packages only
//	mage testRace       Run all tests with the race detector
//	mage cover          Write a coverage profile to coverage/
//	mage vet            Run go vet
//	mage lint           Run golangci-lint (after vet)
//	mage clean          Remove build artifacts and the test cache
//	mage stats          Print Go line counts per package
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binLint   = "golangci-lint"
	coverDir  = "coverage"
	publicPkg = "/pkg/"
)

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestUnit runs only the tests of packages under pkg/.
func TestUnit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" && strings.Contains(pkg, publicPkg) {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test"}, unitPkgs...)
	return sh.RunV(binGo, args...)
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile to coverage/.
func Cover() error {
	if err := os.MkdirAll(coverDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "test", "-coverprofile", filepath.Join(coverDir, "cover.out"), "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes coverage output and the test cache.
func Clean() error {
	if err := os.RemoveAll(coverDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean", "-testcache")
}

// Stats prints production and test line counts per package directory.
func Stats() error {
	counts := map[string]*lineCount{}
	for _, root := range []string{"pkg", "internal"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
				return err
			}
			n, err := countLines(path)
			if err != nil {
				return err
			}
			dir := filepath.Dir(path)
			if counts[dir] == nil {
				counts[dir] = &lineCount{}
			}
			if strings.HasSuffix(path, "_test.go") {
				counts[dir].test += n
			} else {
				counts[dir].prod += n
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	dirs := slices.Sorted(maps.Keys(counts))
	var total lineCount
	for _, dir := range dirs {
		c := counts[dir]
		fmt.Printf("%-24s %6d prod %6d test\n", dir, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-24s %6d prod %6d test\n", "total", total.prod, total.test)
	return nil
}

type lineCount struct {
	prod, test int
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return bytes.Count(data, []byte("\n")), nil
}
