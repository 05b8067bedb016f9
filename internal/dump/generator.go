package dump

import (
	"fmt"
	"slices"
)

// Generator builds the command line that dumps one source file's syntax tree
// to standard output.
type Generator interface {
	Command(path string) (name string, args []string)
	Name() string
}

// Standards lists the accepted language standard selectors.
var Standards = []string{"c++11", "c++14", "c++17", "c++20"}

// DefaultStandard is used when no standard is selected.
const DefaultStandard = "c++11"

// ValidateStandard reports an error for selectors clang is not asked to handle.
func ValidateStandard(std string) error {
	if !slices.Contains(Standards, std) {
		return fmt.Errorf("unsupported language standard %q (want one of %v)", std, Standards)
	}
	return nil
}

// Clang implements Generator for clang's -ast-dump.
type Clang struct {
	Path        string   // Executable, "clang" when empty
	Std         string   // Language standard, DefaultStandard when empty
	IncludeDirs []string // Added as -I flags in order
	AllComments bool     // Also attach ordinary comments, not just doc comments
}

func (c *Clang) Command(path string) (string, []string) {
	name := c.Path
	if name == "" {
		name = "clang"
	}
	std := c.Std
	if std == "" {
		std = DefaultStandard
	}

	// -fsyntax-only: parse and dump, no object file.
	args := []string{"-Xclang", "-ast-dump", "-fsyntax-only", "-fno-color-diagnostics", "-std=" + std}
	if c.AllComments {
		args = append(args, "-fparse-all-comments")
	}
	for _, dir := range c.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	return name, append(args, path)
}

func (c *Clang) Name() string {
	return "clang"
}
