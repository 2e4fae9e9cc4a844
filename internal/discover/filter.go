package discover

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Filter excludes names matching any of a set of glob patterns. Path
// patterns use '/' as separator, so "*" stays within one path segment and
// "**" crosses segments. A nil Filter excludes nothing.
type Filter struct {
	patterns []compiledPattern
}

// NewFilter compiles patterns.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
		}
		f.patterns = append(f.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return f, nil
}

// Excluded reports whether name matches a pattern. It is used for class
// names.
func (f *Filter) Excluded(name string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.patterns {
		if p.glob.Match(name) {
			return true
		}
	}
	return false
}

// ExcludedPath reports whether path, or its base name, matches a pattern.
func (f *Filter) ExcludedPath(path string) bool {
	if f == nil {
		return false
	}
	slashed := filepath.ToSlash(path)
	return f.Excluded(slashed) || f.Excluded(filepath.Base(path))
}

// Patterns returns the source patterns in compile order.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = p.pattern
	}
	return out
}
