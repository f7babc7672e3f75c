package photo

import "strings"

// Filter selects non-deleted photos. A nil AlbumID matches every album,
// including photos without one. SearchText is trimmed and matched as a literal,
// case-insensitive substring of title, description or tags.
type Filter struct {
	AlbumID    *string
	SearchText string
}

// Text returns the normalized search text, empty when no text filter applies.
func (f Filter) Text() string {
	return strings.TrimSpace(f.SearchText)
}

// Matches reports whether p satisfies the filter.
func (f Filter) Matches(p Photo) bool {
	if p.IsDeleted {
		return false
	}
	if f.AlbumID != nil && (p.AlbumID == nil || *p.AlbumID != *f.AlbumID) {
		return false
	}

	text := strings.ToLower(f.Text())
	if text == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Description, p.Tags} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}
