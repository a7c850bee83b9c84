package session

import "strings"

// SplitTags splits comma-separated tag text and trims every tag.
//
// Empty entries are kept, so "" yields [""] and "a," yields ["a", ""].
func SplitTags(text string) []string {
	parts := strings.Split(text, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinTags renders tags as editable text.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
