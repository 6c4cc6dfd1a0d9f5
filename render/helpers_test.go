package render

import (
	"strings"
	"testing"

	"github.com/levkoz/blockpress/post"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World! 2025", "hello-world-2025"},
		{"My First Post", "my-first-post"},
		{"  spaced   out  ", "spaced-out"},
		{"ALL CAPS", "all-caps"},
		{"emoji 🎉 title", "emoji-title"},
		{"", ""},
		{"!!??..", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.expected {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugTruncates(t *testing.T) {
	long := strings.Repeat("word ", 30)
	got := Slug(long)
	if len([]rune(got)) != 50 {
		t.Errorf("Slug length = %d, want 50", len([]rune(got)))
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Hello, World! 2025"); got != "hello-world-2025.html" {
		t.Errorf("Filename = %q, want %q", got, "hello-world-2025.html")
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025-03-09", "Mar 9, 2025"},
		{"2024-12-25", "Dec 25, 2024"},
		{"", ""},
		{"2025-13", "2025-13"},
		{"soon", "soon"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.expected {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestWordCount(t *testing.T) {
	p := post.Post{
		Title: "Two words",
		Blocks: []post.Block{
			{Type: post.BlockParagraph, Content: "one two three"},
			{Type: post.BlockList, Items: []string{"four five", "six"}},
			{Type: post.BlockImage, Caption: "seven"},
			{Type: post.BlockCode, Content: "eight nine"},
		},
	}
	if got := WordCount(p); got != 11 {
		t.Errorf("WordCount = %d, want 11", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{401, 3},
	}
	for _, tt := range tests {
		p := post.Post{Blocks: []post.Block{{
			Type:    post.BlockParagraph,
			Content: strings.TrimSpace(strings.Repeat("w ", tt.words)),
		}}}
		if got := ReadingMinutes(p); got != tt.expected {
			t.Errorf("ReadingMinutes(%d words) = %d, want %d", tt.words, got, tt.expected)
		}
	}
}

func TestExcerptExplicit(t *testing.T) {
	p := post.Post{
		Excerpt: "hand-written summary",
		Blocks:  []post.Block{{Type: post.BlockParagraph, Content: "ignored"}},
	}
	if got := Excerpt(p); got != "hand-written summary" {
		t.Errorf("Excerpt = %q, want explicit excerpt", got)
	}
}

func TestExcerptFromFirstParagraph(t *testing.T) {
	long := strings.Repeat("a", 200)
	p := post.Post{Blocks: []post.Block{{Type: post.BlockParagraph, Content: long}}}
	want := strings.Repeat("a", 150) + "..."
	if got := Excerpt(p); got != want {
		t.Errorf("Excerpt = %q, want 150 chars plus ellipsis", got)
	}
}

func TestExcerptPlaceholder(t *testing.T) {
	tests := []post.Post{
		{},
		{Blocks: []post.Block{{Type: post.BlockHeading, Content: "not a paragraph"}}},
	}
	for _, p := range tests {
		if got := Excerpt(p); got != "Read more about this topic..." {
			t.Errorf("Excerpt(%+v) = %q, want placeholder", p, got)
		}
	}
}
