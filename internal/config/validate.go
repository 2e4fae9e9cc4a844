package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidFrontMatter indicates an unsupported front matter encoding
	ErrInvalidFrontMatter = errors.New("invalid front matter format")

	// ErrEmptyPath indicates a missing output directory
	ErrEmptyPath = errors.New("empty output path")

	// ErrInvalidVerbosity indicates a negative verbosity level
	ErrInvalidVerbosity = errors.New("invalid verbosity")
)

// Validate checks that the configuration is valid and complete. All problems
// are reported together.
func Validate(cfg *Config) error {
	var errs []error

	switch strings.ToLower(cfg.Output.Format) {
	case "markdown", "hugo":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'markdown' or 'hugo', got '%s'", ErrInvalidFormat, cfg.Output.Format))
	}

	switch strings.ToLower(cfg.Output.FrontMatter) {
	case "toml", "yaml":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'toml' or 'yaml', got '%s'", ErrInvalidFrontMatter, cfg.Output.FrontMatter))
	}

	if strings.TrimSpace(cfg.Output.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", ErrEmptyPath))
	}

	if cfg.Verbose < 0 {
		errs = append(errs, fmt.Errorf("%w: must not be negative, got %d", ErrInvalidVerbosity, cfg.Verbose))
	}

	return errors.Join(errs...)
}
