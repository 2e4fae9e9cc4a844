package render

import (
	"regexp"
	"strings"

	"github.com/phobologic/gddocs/internal/markdown"
	"github.com/phobologic/gddocs/internal/markup"
	"github.com/phobologic/gddocs/internal/model"
)

// referencePattern matches [Class], [Class.member], [.member] and [member].
var referencePattern = regexp.MustCompile(`\[([A-Z][a-zA-Z0-9_]*)?(?:\.?([a-z0-9_]+))?\]`)

// resolveReferences replaces cross references in text with links. Text inside
// code, existing links and references to unknown targets is left as is.
func (r *Renderer) resolveReferences(cls *model.Class, text string) string {
	matches := referencePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	code := r.scanner.CodeRanges(text)

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		className, member := group(text, m, 1), group(text, m, 2)
		if className == "" && member == "" {
			continue
		}
		if strings.HasPrefix(text[end:], "(") || markup.InCode(code, start, end) {
			continue
		}

		link, ok := r.link(cls, className, member)
		if !ok {
			r.logger.Warn("unresolved reference",
				"class", cls.Name, "reference", text[start:end])
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(link)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// link builds the Markdown link for a reference seen in the documentation of
// cls. A reference without a class name points at a symbol of cls itself.
func (r *Renderer) link(cls *model.Class, className, member string) (string, bool) {
	switch {
	case className == "":
		if !cls.HasSymbol(member) {
			return "", false
		}
		return markdown.Link(member, "#"+anchor(member)), true
	case member == "":
		if _, ok := r.classes.Lookup(className); !ok {
			return "", false
		}
		return markdown.Link(className, r.classTarget(className)), true
	default:
		if !r.classes.HasSymbol(className, member) {
			return "", false
		}
		return markdown.Link(className+"."+member, r.classTarget(className)+"/#"+anchor(member)), true
	}
}

// classTarget is the link target of a class document relative to another
// class document.
func (r *Renderer) classTarget(name string) string {
	return "../" + name
}

func anchor(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func group(text string, match []int, n int) string {
	if match[2*n] < 0 {
		return ""
	}
	return text[match[2*n]:match[2*n+1]]
}
