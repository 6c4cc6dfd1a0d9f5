package render

import (
	"strings"
	"time"
	"unicode"

	"github.com/levkoz/blockpress/post"
)

const (
	// slugMaxLen caps the filename stem derived from a title.
	slugMaxLen = 50

	// wordsPerMinute drives the reading-time estimate.
	wordsPerMinute = 200

	// excerptMaxLen caps the excerpt derived from a leading paragraph.
	excerptMaxLen = 150
)

// Slug derives the filesystem-safe identifier for a title: lowercase,
// every character outside [a-z0-9\s] stripped, whitespace runs collapsed
// to single hyphens, capped at 50 characters.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	slug := strings.Join(strings.Fields(b.String()), "-")
	if runes := []rune(slug); len(runes) > slugMaxLen {
		slug = string(runes[:slugMaxLen])
	}
	return slug
}

// Filename is the slug with the export extension appended; it names the
// downloaded document and is the link target the index card uses.
func Filename(title string) string {
	return Slug(title) + ".html"
}

// FormatDate renders an ISO date as "Jan 2, 2006". Empty input yields an
// empty string; anything unparseable passes through untouched so a
// half-typed date never blanks the preview.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// WordCount sums whitespace-delimited tokens across the title, every
// block's primary text content, every list item, and every caption.
func WordCount(p post.Post) int {
	n := len(strings.Fields(p.Title))
	for _, b := range p.Blocks {
		n += len(strings.Fields(b.Content))
		for _, item := range b.Items {
			n += len(strings.Fields(item))
		}
		n += len(strings.Fields(b.Caption))
	}
	return n
}

// ReadingMinutes is the reading-time estimate: ceil(words / 200), never
// negative, 0 for an empty document.
func ReadingMinutes(p post.Post) int {
	return (WordCount(p) + wordsPerMinute - 1) / wordsPerMinute
}

// Excerpt picks the index-card summary: the explicit excerpt when set,
// otherwise the first 150 characters of a leading paragraph, otherwise a
// fixed placeholder.
func Excerpt(p post.Post) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	if len(p.Blocks) > 0 && p.Blocks[0].Type == post.BlockParagraph {
		runes := []rune(p.Blocks[0].Content)
		if len(runes) > excerptMaxLen {
			runes = runes[:excerptMaxLen]
		}
		return string(runes) + "..."
	}
	return indexCardPlaceholder
}
