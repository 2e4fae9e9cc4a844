package render

import (
	"fmt"

	"github.com/phobologic/gddocs/internal/markdown"
	"github.com/phobologic/gddocs/internal/model"
)

// Index renders the project landing page with a table of contents.
func (r *Renderer) Index(info model.ProjectInfo) (markdown.Document, error) {
	var content []string

	if r.opts.Format == Hugo {
		fm := FrontMatter{
			Title:       info.Name,
			Description: firstLine(info.Description),
			Author:      r.opts.Author,
			Date:        r.opts.Date,
		}
		lines, err := fm.Lines(r.opts.FrontMatter)
		if err != nil {
			return markdown.Document{}, fmt.Errorf("index: %w", err)
		}
		content = append(content, lines...)
	}

	content = append(content, markdown.Comment(generatorComment), "")

	if r.opts.Format == Markdown && info.Name != "" {
		title := info.Name
		if info.Version != "" {
			title += " (" + markdown.Small(info.Version) + ")"
		}
		content = append(content, markdown.Heading(title, 1)...)
	}
	if info.Description != "" {
		content = append(content, info.Description, "")
	}

	if toc := r.TableOfContents(); len(toc) > 0 {
		content = append(content, markdown.Section{
			Title:   "Contents",
			Level:   2,
			Content: markdown.WrapInBlankLines(toc),
		}.Lines()...)
	}

	return markdown.Document{Title: indexTitle, Content: content}.Finalize(), nil
}

// TableOfContents lists every class grouped by category. Categorized classes
// are indented under a bold category bullet.
func (r *Renderer) TableOfContents() []string {
	var toc []string
	for _, classes := range r.classes.GroupByCategory() {
		indent := ""
		if cat := classes[0].Category(); cat != "" {
			toc = append(toc, "- "+markdown.Bold(cat))
			indent = "  "
		}
		for _, cls := range classes {
			toc = append(toc, indent+"- "+markdown.Link(cls.Name, cls.Name))
		}
	}
	return toc
}
