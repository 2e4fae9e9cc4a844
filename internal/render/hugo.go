package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the output dialect.
type Format string

const (
	Markdown Format = "markdown"
	Hugo     Format = "hugo"
)

// FrontMatterFormat selects how Hugo front matter is encoded.
type FrontMatterFormat string

const (
	TOML FrontMatterFormat = "toml"
	YAML FrontMatterFormat = "yaml"
)

// FrontMatter is the page metadata Hugo reads from the top of a document.
type FrontMatter struct {
	Title       string   `toml:"title" yaml:"title"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Author      string   `toml:"author,omitempty" yaml:"author,omitempty"`
	Date        string   `toml:"date,omitempty" yaml:"date,omitempty"`
	Categories  []string `toml:"categories,omitempty" yaml:"categories,omitempty"`
}

// Lines encodes the front matter between its format's fences.
func (fm FrontMatter) Lines(format FrontMatterFormat) ([]string, error) {
	var buf bytes.Buffer
	var fence string

	switch format {
	case TOML, "":
		fence = "+++"
		if err := toml.NewEncoder(&buf).Encode(fm); err != nil {
			return nil, fmt.Errorf("encoding toml front matter: %w", err)
		}
	case YAML:
		fence = "---"
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, fmt.Errorf("encoding yaml front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml front matter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown front matter format %q", format)
	}

	body := strings.TrimRight(buf.String(), "\n")
	out := []string{fence}
	out = append(out, strings.Split(body, "\n")...)
	return append(out, fence, ""), nil
}

// Shortcode returns a paired Hugo shortcode wrapping content.
func Shortcode(name string, content string, args ...string) []string {
	open := name
	if len(args) > 0 {
		open += " " + strings.Join(args, " ")
	}
	return []string{
		"{{< " + open + " >}}",
		content,
		"{{< /" + name + " >}}",
	}
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
