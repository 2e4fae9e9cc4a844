// Package markdown provides the small set of Markdown building blocks the
// reference renderer assembles documents from. Every builder returns plain
// lines; nothing here knows about GDScript.
package markdown

import (
	"fmt"
	"strings"
)

// headingSpecial lists the characters escaped in heading text.
const headingSpecial = "*_-+`"

var tableCellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Escape prefixes Markdown emphasis and list characters with a backslash.
func Escape(text string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(headingSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Heading returns an escaped ATX heading padded with blank lines.
func Heading(text string, level int) []string {
	return []string{"", strings.Repeat("#", level) + " " + Escape(text), ""}
}

// Bold wraps text in strong emphasis.
func Bold(text string) string {
	return "**" + text + "**"
}

// Code wraps text in an inline code span.
func Code(text string) string {
	return "`" + text + "`"
}

// Link returns an inline link.
func Link(text, target string) string {
	return fmt.Sprintf("[%s](%s)", text, target)
}

// Comment returns an HTML comment.
func Comment(text string) string {
	return "<!-- " + text + " -->"
}

// HTML surrounds text with an HTML element.
func HTML(text, tag string) string {
	return fmt.Sprintf("<%[2]s>%[1]s</%[2]s>", text, tag)
}

// Small is shorthand for HTML(text, "small").
func Small(text string) string {
	return HTML(text, "small")
}

// List turns items into bullet lines.
func List(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "- " + item
	}
	return out
}

// WrapInBlankLines pads lines with a blank line on both sides.
func WrapInBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, "")
	out = append(out, lines...)
	return append(out, "")
}

// TableRow formats cells as a pipe table row.
func TableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = tableCellEscaper.Replace(c)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

// Table returns a header row, the delimiter row and one row per entry.
func Table(header []string, rows [][]string) []string {
	delim := make([]string, len(header))
	for i := range delim {
		delim[i] = "---"
	}
	out := []string{TableRow(header), "| " + strings.Join(delim, " | ") + " |"}
	for _, r := range rows {
		out = append(out, TableRow(r))
	}
	return out
}

// CodeBlock returns a fenced code block.
func CodeBlock(code, language string) []string {
	return []string{"```" + language, code, "```"}
}

// Section is a titled block that renders to nothing when it has no content.
type Section struct {
	Title   string
	Level   int
	Content []string
}

// Lines renders the section heading followed by its content.
func (s Section) Lines() []string {
	if len(s.Content) == 0 {
		return nil
	}
	out := Heading(s.Title, s.Level)
	out = append(out, s.Content...)
	return append(out, "")
}

// Document is one output file.
type Document struct {
	Title   string
	Content []string
}

// Filename returns the document file name.
func (d Document) Filename() string {
	return d.Title + ".md"
}

// Finalize returns a copy with runs of blank lines collapsed to one and
// leading and trailing blank lines removed. Entries holding several lines are
// split first so blank runs inside them collapse too.
func (d Document) Finalize() Document {
	out := make([]string, 0, len(d.Content))
	for _, entry := range d.Content {
		for _, line := range strings.Split(entry, "\n") {
			blank := strings.TrimSpace(line) == ""
			if blank && (len(out) == 0 || out[len(out)-1] == "") {
				continue
			}
			if blank {
				line = ""
			}
			out = append(out, line)
		}
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return Document{Title: d.Title, Content: out}
}

// String joins the content into file text ending with a newline.
func (d Document) String() string {
	if len(d.Content) == 0 {
		return ""
	}
	return strings.Join(d.Content, "\n") + "\n"
}
