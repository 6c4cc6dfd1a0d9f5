// Package post defines the content model for a single blog post under
// authoring: metadata, an ordered sequence of typed content blocks, and a
// reference list. The Document type owns all mutations; rendering and
// persistence live in their own packages and treat a Post as read-only.
package post

import "strings"

// HeroColor is a key into the fixed decorative header palette.
type HeroColor string

// Hero palette keys.
const (
	HeroOrange HeroColor = "orange"
	HeroBlue   HeroColor = "blue"
	HeroGreen  HeroColor = "green"
	HeroPurple HeroColor = "purple"
	HeroPink   HeroColor = "pink"
	HeroTeal   HeroColor = "teal"
)

// DefaultHeroColor is used whenever a draft or request carries no palette
// key, or a key outside the palette.
const DefaultHeroColor = HeroOrange

// DefaultHeroEmoji is the fallback glyph for posts without a hero emoji.
const DefaultHeroEmoji = "📝"

var heroPalette = map[HeroColor]struct{}{
	HeroOrange: {},
	HeroBlue:   {},
	HeroGreen:  {},
	HeroPurple: {},
	HeroPink:   {},
	HeroTeal:   {},
}

// Valid reports whether c is one of the palette keys.
func (c HeroColor) Valid() bool {
	_, ok := heroPalette[c]
	return ok
}

// Clamp returns c if it is a palette key, DefaultHeroColor otherwise.
// Callers that interpolate the color into markup rely on this.
func (c HeroColor) Clamp() HeroColor {
	if c.Valid() {
		return c
	}
	return DefaultHeroColor
}

// Reference is an external source cited at the end of a post. Either field
// may be empty while editing; only fully populated entries appear in
// rendered output.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Empty reports whether both fields are blank.
func (r Reference) Empty() bool {
	return strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.URL) == ""
}

// Renderable reports whether both fields are populated.
func (r Reference) Renderable() bool {
	return r.Title != "" && r.URL != ""
}

// Post is the complete document being authored.
type Post struct {
	Title      string      `json:"title"`
	Category   string      `json:"category"`
	Date       string      `json:"date"` // ISO 2006-01-02
	Excerpt    string      `json:"excerpt,omitempty"`
	HeroColor  HeroColor   `json:"heroColor"`
	HeroEmoji  string      `json:"heroEmoji,omitempty"`
	Blocks     []Block     `json:"blocks"`
	References []Reference `json:"references"`
}

// Emoji returns the hero emoji, falling back to the default glyph.
func (p Post) Emoji() string {
	if p.HeroEmoji == "" {
		return DefaultHeroEmoji
	}
	return p.HeroEmoji
}

// Normalize returns a copy of p with the hero color clamped to the
// palette, fully empty references dropped, and list items filtered of
// whitespace-only entries. The export pipeline runs this before
// rendering; renderers additionally tolerate un-normalized input.
func (p Post) Normalize() Post {
	out := p
	out.HeroColor = p.HeroColor.Clamp()
	out.References = FilterReferences(p.References)
	if len(p.Blocks) > 0 {
		out.Blocks = make([]Block, len(p.Blocks))
		copy(out.Blocks, p.Blocks)
		for i := range out.Blocks {
			if out.Blocks[i].Type == BlockList {
				out.Blocks[i].Items = FilterEmpty(out.Blocks[i].Items)
			}
		}
	}
	return out
}

// FilterReferences drops entries where both fields are empty.
func FilterReferences(refs []Reference) []Reference {
	var out []Reference
	for _, r := range refs {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, v)
		}
	}
	return out
}
