// Package markup locates code regions in Markdown text using the tree-sitter
// Markdown grammars, so text transforms can leave code untouched.
package markup

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	tsmarkdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	tsinline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Contains reports whether [start, end) overlaps r.
func (r Range) Contains(start, end int) bool {
	return start < r.End && end > r.Start
}

// grammar pairs a tree-sitter language with the node types that mark code.
type grammar struct {
	name      string
	lang      *sitter.Language
	codeNodes map[string]struct{}
}

var grammars = []grammar{
	{
		name: "markdown",
		lang: tsmarkdown.GetLanguage(),
		codeNodes: map[string]struct{}{
			"fenced_code_block":   {},
			"indented_code_block": {},
		},
	},
	{
		name: "markdown_inline",
		lang: tsinline.GetLanguage(),
		codeNodes: map[string]struct{}{
			"code_span": {},
		},
	},
}

// Scanner finds code regions. A Scanner owns its parsers and must not be
// used from more than one goroutine at a time.
type Scanner struct {
	parsers []*sitter.Parser
}

// NewScanner creates a scanner with one parser per Markdown grammar.
func NewScanner() *Scanner {
	s := &Scanner{parsers: make([]*sitter.Parser, len(grammars))}
	for i, g := range grammars {
		p := sitter.NewParser()
		p.SetLanguage(g.lang)
		s.parsers[i] = p
	}
	return s
}

// CodeRanges returns the merged byte ranges of fenced code blocks, indented
// code blocks and inline code spans in text, in ascending order.
func (s *Scanner) CodeRanges(text string) []Range {
	if text == "" {
		return nil
	}
	source := []byte(text)

	var ranges []Range
	for i, g := range grammars {
		tree, err := s.parsers[i].ParseCtx(context.Background(), nil, source)
		if err != nil {
			continue
		}
		ranges = collect(tree.RootNode(), g.codeNodes, ranges)
		tree.Close()
	}
	return merge(ranges)
}

func collect(node *sitter.Node, types map[string]struct{}, acc []Range) []Range {
	if node == nil {
		return acc
	}
	if _, ok := types[node.Type()]; ok {
		return append(acc, Range{Start: int(node.StartByte()), End: int(node.EndByte())})
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		acc = collect(node.NamedChild(i), types, acc)
	}
	return acc
}

func merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})
	out := []Range{ranges[0]}
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// InCode reports whether [start, end) overlaps any of the sorted ranges.
func InCode(ranges []Range, start, end int) bool {
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > start
	})
	return i < len(ranges) && ranges[i].Contains(start, end)
}
