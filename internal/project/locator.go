// Package project locates the consumer project a run operates on and reads
// its marker file and existing lint/format configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kitium-ai/lint/internal/types"
)

// SelfPackageName is the package identity this tool is published under.
// A marker file declaring it is never treated as a consumer root.
const SelfPackageName = "@kitiumai/lint"

// MarkerFile is the file that identifies a project root.
const MarkerFile = "package.json"

// maxWalkDepth bounds the upward walk from each start directory.
const maxWalkDepth = 10

// ErrNoProjectRoot is returned when no consumer project root can be found.
var ErrNoProjectRoot = errors.New("no project root found")

// Candidate filenames per dialect, in priority order.
var (
	flatConfigFiles = []string{"eslint.config.js"}
	legacyRCFiles   = []string{
		".eslintrc.js",
		".eslintrc.cjs",
		".eslintrc.json",
		".eslintrc.yml",
		".eslintrc.yaml",
		".eslintrc",
	}
	styleDialectFiles = []string{"tslint.json"}
	formatterFiles    = []string{
		".prettierrc.js",
		".prettierrc.cjs",
		".prettierrc.json",
		".prettierrc.yml",
		".prettierrc.yaml",
		".prettierrc",
	}
)

// Generated and well-known file names.
const (
	FlatConfigFile       = "eslint.config.js"
	FormatterConfigFile  = ".prettierrc.js"
	FormatterIgnoreFile  = ".prettierignore"
	StyleConfigFile      = "tslint.json"
	DeprecatedIgnoreFile = ".eslintignore"
)

// DetectedConfigs lists the configuration files found in a project root.
// An empty path means the dialect is not present.
type DetectedConfigs struct {
	ModernFlat   string
	LegacyRC     string
	StyleDialect string
	Formatter    string
}

// Any reports whether at least one dialect was found.
func (d DetectedConfigs) Any() bool {
	return d.ModernFlat != "" || d.LegacyRC != "" || d.StyleDialect != "" || d.Formatter != ""
}

// Path returns the detected path for a dialect.
func (d DetectedConfigs) Path(dialect types.Dialect) string {
	switch dialect {
	case types.DialectModernFlat:
		return d.ModernFlat
	case types.DialectLegacyRC:
		return d.LegacyRC
	case types.DialectStyle:
		return d.StyleDialect
	case types.DialectFormatter:
		return d.Formatter
	}
	return ""
}

// FindRoot walks upward from each start directory in order and returns the
// first directory whose marker file parses and does not declare selfName.
// A self-identified directory is skipped and the walk continues above it.
func FindRoot(starts []string, selfName string) (string, error) {
	for _, start := range starts {
		if start == "" {
			continue
		}
		dir, err := filepath.Abs(start)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", start, err)
		}

		for depth := 0; depth < maxWalkDepth; depth++ {
			if isConsumerRoot(dir, selfName) {
				return dir, nil
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", ErrNoProjectRoot
}

func isConsumerRoot(dir, selfName string) bool {
	m, err := ReadManifest(dir)
	if err != nil {
		return false
	}
	return m.Name != selfName
}

// DetectExistingConfigs scans root for each dialect's candidate filenames.
// The first match per dialect wins; dialects are independent.
func DetectExistingConfigs(root string) DetectedConfigs {
	return DetectedConfigs{
		ModernFlat:   firstExisting(root, flatConfigFiles),
		LegacyRC:     firstExisting(root, legacyRCFiles),
		StyleDialect: firstExisting(root, styleDialectFiles),
		Formatter:    firstExisting(root, formatterFiles),
	}
}

func firstExisting(root string, names []string) string {
	for _, name := range names {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
