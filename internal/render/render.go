// Package render turns the documentation model into Markdown documents,
// either plain or annotated for the Hugo static site generator.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/phobologic/gddocs/internal/markdown"
	"github.com/phobologic/gddocs/internal/markup"
	"github.com/phobologic/gddocs/internal/model"
)

const (
	generatorComment = "Auto-generated from JSON by gddocs. Do not edit this document directly."
	codeLanguage     = "gdscript"
	indexTitle       = "index"
)

// Options controls the rendered output.
type Options struct {
	Format      Format
	FrontMatter FrontMatterFormat // Hugo only
	Author      string            // Hugo only
	Date        string            // Hugo only
}

// Renderer renders the classes of one collection. It is not safe for
// concurrent use.
type Renderer struct {
	classes *model.Collection
	opts    Options
	scanner *markup.Scanner
	logger  *slog.Logger
}

// New creates a renderer for classes. A nil logger discards log output.
func New(classes *model.Collection, opts Options, logger *slog.Logger) (*Renderer, error) {
	switch opts.Format {
	case "":
		opts.Format = Markdown
	case Markdown, Hugo:
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
	switch opts.FrontMatter {
	case "":
		opts.FrontMatter = TOML
	case TOML, YAML:
	default:
		return nil, fmt.Errorf("unknown front matter format %q", opts.FrontMatter)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		classes: classes,
		opts:    opts,
		scanner: markup.NewScanner(),
		logger:  logger,
	}, nil
}

// Documents renders the index page, when requested, followed by one document
// per class in collection order. A nil info renders an untitled index.
func (r *Renderer) Documents(info *model.ProjectInfo, makeIndex bool) ([]markdown.Document, error) {
	docs := make([]markdown.Document, 0, r.classes.Len()+1)
	if makeIndex {
		var project model.ProjectInfo
		if info != nil {
			project = *info
		}
		doc, err := r.Index(project)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	for _, cls := range r.classes.Classes() {
		doc, err := r.Class(cls)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Class renders the reference page of cls.
func (r *Renderer) Class(cls *model.Class) (markdown.Document, error) {
	var content []string

	if r.opts.Format == Hugo {
		fm := FrontMatter{
			Title:       cls.Name,
			Description: firstLine(cls.Description),
			Author:      r.opts.Author,
			Date:        r.opts.Date,
		}
		if cat := cls.Category(); cat != "" {
			fm.Categories = []string{cat}
		}
		lines, err := fm.Lines(r.opts.FrontMatter)
		if err != nil {
			return markdown.Document{}, fmt.Errorf("class %s: %w", cls.Name, err)
		}
		content = append(content, lines...)
	}

	content = append(content, markdown.Comment(generatorComment), "")

	if r.opts.Format == Markdown {
		title := cls.Name
		if cls.Abstract() {
			title += " " + markdown.Small("(abstract)")
		}
		content = append(content, markdown.Heading(title, 1)...)
	}

	if line := r.extendsLine(cls); line != "" {
		content = append(content, line, "")
	}

	content = append(content, markdown.Section{
		Title:   "Description",
		Level:   2,
		Content: nonEmpty(r.resolveReferences(cls, cls.Description)),
	}.Lines()...)
	content = append(content, markdown.Section{
		Title:   "Properties",
		Level:   2,
		Content: summaryTable([]string{"Type", "Name"}, members(cls.Members)),
	}.Lines()...)
	content = append(content, markdown.Section{
		Title:   "Methods",
		Level:   2,
		Content: summaryTable([]string{"Type", "Name"}, functions(cls.Functions)),
	}.Lines()...)
	content = append(content, markdown.Section{
		Title:   "Signals",
		Level:   2,
		Content: r.signals(cls),
	}.Lines()...)
	content = append(content, r.detailSections(cls, 2)...)

	if len(cls.SubClasses) > 0 {
		content = append(content, markdown.Heading("Sub-classes", 2)...)
		for _, sub := range cls.SubClasses {
			content = append(content, markdown.Heading(sub.Name, 3)...)
			if line := r.extendsLine(sub); line != "" {
				content = append(content, line, "")
			}
			content = append(content, nonEmpty(r.resolveReferences(sub, sub.Description))...)
			content = append(content, r.detailSections(sub, 4)...)
		}
	}

	doc := markdown.Document{Title: cls.Name, Content: content}.Finalize()
	r.logger.Debug("rendered class", "class", cls.Name, "lines", len(doc.Content))
	return doc, nil
}

// detailSections renders enumerations, constants, property and method
// descriptions with section headings at level.
func (r *Renderer) detailSections(cls *model.Class, level int) []string {
	var out []string

	out = append(out, markdown.Section{
		Title:   "Enumerations",
		Level:   level,
		Content: r.details(cls, enums(cls.Enums), level+1),
	}.Lines()...)
	out = append(out, markdown.Section{
		Title:   "Constants",
		Level:   level,
		Content: summaryTable([]string{"Type", "Name", "Value"}, constants(cls.Constants)),
	}.Lines()...)
	out = append(out, markdown.Section{
		Title:   "Property Descriptions",
		Level:   level,
		Content: r.details(cls, members(cls.Members), level+1),
	}.Lines()...)

	// Static functions belong to the class itself and are listed first.
	ordered := append(cls.StaticFunctions(), cls.InstanceFunctions()...)
	out = append(out, markdown.Section{
		Title:   "Method Descriptions",
		Level:   level,
		Content: r.details(cls, functions(ordered), level+1),
	}.Lines()...)

	return out
}

func (r *Renderer) extendsLine(cls *model.Class) string {
	chain := r.classes.ExtendsChain(cls)
	if len(chain) == 0 {
		return ""
	}
	links := make([]string, len(chain))
	for i, name := range chain {
		links[i] = markdown.Link(name, r.classTarget(name))
	}
	return markdown.Bold("Extends:") + " " + strings.Join(links, " < ")
}

func (r *Renderer) signals(cls *model.Class) []string {
	if len(cls.Signals) == 0 {
		return nil
	}
	items := make([]string, len(cls.Signals))
	for i, s := range cls.Signals {
		items[i] = "- " + s.Signature
		if desc := r.resolveReferences(cls, s.Description); desc != "" {
			items[i] += ": " + desc
		}
	}
	return markdown.WrapInBlankLines(items)
}

func (r *Renderer) details(cls *model.Class, elements []model.Element, level int) []string {
	var out []string
	for _, e := range elements {
		sym := e.Base()

		heading := sym.Name
		if a := e.Annotation(); a != "" {
			heading += " " + markdown.Small("("+a+")")
		}
		out = append(out, markdown.Heading(heading, level)...)
		out = append(out, r.code(sym.Signature)...)
		out = append(out, "")

		if m, ok := e.(model.Member); ok {
			out = append(out, accessors(m)...)
		}
		out = append(out, nonEmpty(r.resolveReferences(cls, sym.Description))...)
	}
	return out
}

func (r *Renderer) code(signature string) []string {
	if r.opts.Format == Hugo {
		return Shortcode("highlight", signature, codeLanguage)
	}
	return markdown.CodeBlock(signature, codeLanguage)
}

// accessors lists the public setter and getter of a member.
func accessors(m model.Member) []string {
	var items []string
	if m.Setter != "" && !strings.HasPrefix(m.Setter, "_") {
		items = append(items, markdown.Bold("Setter")+": "+markdown.Code(m.Setter))
	}
	if m.Getter != "" && !strings.HasPrefix(m.Getter, "_") {
		items = append(items, markdown.Bold("Getter")+": "+markdown.Code(m.Getter))
	}
	if len(items) == 0 {
		return nil
	}
	return append(markdown.List(items), "")
}

func summaryTable(header []string, elements []model.Element) []string {
	var rows [][]string
	for _, e := range elements {
		if cells := e.Summary(); cells != nil {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return markdown.WrapInBlankLines(markdown.Table(header, rows))
}

func nonEmpty(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}

func functions(in []model.Function) []model.Element {
	out := make([]model.Element, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func members(in []model.Member) []model.Element {
	out := make([]model.Element, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func enums(in []model.Enumeration) []model.Element {
	out := make([]model.Element, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func constants(in []model.Constant) []model.Element {
	out := make([]model.Element, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
