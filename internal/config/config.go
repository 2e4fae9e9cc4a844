// Package config loads gddocs settings from defaults, an optional
// .gddocs.yaml file, GDDOCS_* environment variables and command-line flags.
package config

// Config represents the complete gddocs configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Project ProjectConfig `yaml:"project" mapstructure:"project"`
	Exclude ExcludeConfig `yaml:"exclude" mapstructure:"exclude"`
	Verbose int           `yaml:"verbose" mapstructure:"verbose"` // 0 warn, 1 info, 2+ debug

	// Source is the config file that was read, "" when none was found.
	Source string `yaml:"-" mapstructure:"-"`
}

// OutputConfig controls where and how documents are written.
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Format      string `yaml:"format" mapstructure:"format"`             // "markdown" or "hugo"
	FrontMatter string `yaml:"front_matter" mapstructure:"front_matter"` // "toml" or "yaml"
	MakeIndex   bool   `yaml:"make_index" mapstructure:"make_index"`
	Author      string `yaml:"author" mapstructure:"author"`
	Date        string `yaml:"date" mapstructure:"date"` // empty means today
}

// ProjectConfig describes the project on the index page. Project fields in
// a reference dump take precedence.
type ProjectConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Description string `yaml:"description" mapstructure:"description"`
	Version     string `yaml:"version" mapstructure:"version"`
}

// ExcludeConfig lists glob patterns of inputs and classes to leave out.
type ExcludeConfig struct {
	Paths   []string `yaml:"paths" mapstructure:"paths"`
	Classes []string `yaml:"classes" mapstructure:"classes"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:        "dist",
			Format:      "markdown",
			FrontMatter: "toml",
		},
		Exclude: ExcludeConfig{
			Paths:   []string{},
			Classes: []string{},
		},
	}
}
