package model

import "strings"

const (
	tagsDirective     = "tags:"
	categoryDirective = "category:"
)

// ExtractMetadata removes "tags:" and "category:" directive lines from text
// and returns the remaining description with the parsed metadata.
//
// Directives are matched case-insensitively at the start of a trimmed line.
// Tags are lower-cased and comma separated; the category keeps its case.
// When a directive appears more than once, the last line wins.
func ExtractMetadata(text string) (string, Metadata) {
	var meta Metadata
	var kept []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lowered := strings.ToLower(trimmed)

		switch {
		case strings.HasPrefix(lowered, tagsDirective):
			meta.Tags = splitTags(lowered[len(tagsDirective):])
		case strings.HasPrefix(lowered, categoryDirective):
			meta.Category = strings.TrimSpace(trimmed[len(categoryDirective):])
		default:
			kept = append(kept, trimmed)
		}
	}

	return strings.TrimSpace(strings.Join(kept, "\n")), meta
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
