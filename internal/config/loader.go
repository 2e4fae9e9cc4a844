package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"output.path":         "path",
	"output.format":       "format",
	"output.front_matter": "front-matter",
	"output.make_index":   "make-index",
	"output.author":       "author",
	"output.date":         "date",
	"exclude.paths":       "exclude",
	"exclude.classes":     "exclude-class",
	"verbose":             "verbose",
}

// Loader reads the configuration.
type Loader struct {
	// Dir is searched for .gddocs.yaml when File is empty.
	Dir string
	// File is an explicit config file; YAML or TOML by extension. It must
	// exist.
	File string
	// Flags, when set, override every other source for flags the user set.
	Flags *pflag.FlagSet
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Flags set on the command line
// 2. Environment variables (GDDOCS_*)
// 3. Config file
// 4. Default values
func (l Loader) Load() (*Config, error) {
	v := viper.New()

	if l.File != "" {
		v.SetConfigFile(l.File)
	} else {
		dir := l.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(".gddocs")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("GDDOCS")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., GDDOCS_OUTPUT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if l.Flags != nil {
		for key, name := range flagKeys {
			flag := l.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; defaults and env apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	if cfg.Exclude.Paths == nil {
		cfg.Exclude.Paths = []string{}
	}
	if cfg.Exclude.Classes == nil {
		cfg.Exclude.Classes = []string{}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.front_matter", defaults.Output.FrontMatter)
	v.SetDefault("output.make_index", defaults.Output.MakeIndex)
	v.SetDefault("output.author", defaults.Output.Author)
	v.SetDefault("output.date", defaults.Output.Date)

	v.SetDefault("project.name", defaults.Project.Name)
	v.SetDefault("project.description", defaults.Project.Description)
	v.SetDefault("project.version", defaults.Project.Version)

	v.SetDefault("exclude.paths", defaults.Exclude.Paths)
	v.SetDefault("exclude.classes", defaults.Exclude.Classes)

	v.SetDefault("verbose", defaults.Verbose)
}
