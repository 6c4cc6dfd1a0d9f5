// Package render maps a post's content blocks to HTML. The same
// block-to-markup mapping backs the live preview fragment, the exported
// full-page document, and the exported index card, so the three never
// drift apart.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/levkoz/blockpress/post"
	"github.com/levkoz/blockpress/youtube"
)

// EmptyPreview is the placeholder shown while the document has neither a
// title nor any blocks.
const EmptyPreview = `<div class="preview-empty">Start adding content to see the preview</div>`

// indexCardPlaceholder fills the index-card excerpt when the post has no
// explicit excerpt and no leading paragraph to derive one from.
const indexCardPlaceholder = "Read more about this topic..."

// Renderer produces the three HTML artifacts for a post. The zero value
// renders with the default site name.
type Renderer struct {
	SiteName string // nav logo and <title> suffix of exported pages
}

func (r Renderer) siteName() string {
	if r.SiteName == "" {
		return "Personal Blog"
	}
	return r.SiteName
}

// Component wraps the live preview as a templ.Component for HTTP
// responses.
func (r Renderer) Component(p post.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, r.PreviewFragment(p))
		return err
	})
}

// PreviewFragment renders the live preview: hero, header, content blocks
// and references, without any page chrome. A document with no title and
// no blocks renders the empty placeholder instead.
func (r Renderer) PreviewFragment(p post.Post) string {
	if p.Title == "" && len(p.Blocks) == 0 {
		return EmptyPreview
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="post-hero-section ` + string(p.HeroColor.Clamp()) + `">`)
	buf.WriteString(`<div class="post-hero-illustration">` + html.EscapeString(p.Emoji()) + `</div>`)
	buf.WriteString(`</div>`)

	buf.WriteString(`<div class="post-article">`)
	buf.WriteString(`<header class="post-header">`)
	if p.Category != "" {
		buf.WriteString(`<div class="post-meta-top"><span class="post-category-badge">` + html.EscapeString(p.Category) + `</span></div>`)
	}
	title := p.Title
	if title == "" {
		title = "Untitled Post"
	}
	buf.WriteString(`<h1 class="post-full-title">` + html.EscapeString(title) + `</h1>`)
	buf.WriteString(`<div class="post-meta-bottom">`)
	buf.WriteString(`<span>` + html.EscapeString(FormatDate(p.Date)) + `</span>`)
	buf.WriteString(`<span class="separator">•</span>`)
	buf.WriteString(`<span>` + strconv.Itoa(ReadingMinutes(p)) + ` min read</span>`)
	buf.WriteString(`</div>`)
	buf.WriteString(`</header>`)

	buf.WriteString(`<div class="post-content">`)
	writeBlocks(&buf, p.Blocks, `<div style="margin-top: 2rem;"></div>`, `<div style="margin-bottom: 2rem;"></div>`)
	writeReferences(&buf, p.References)
	buf.WriteString(`</div>`)
	buf.WriteString(`</div>`)
	return buf.String()
}

// FullPage renders the self-contained exported document: fixed
// navigation and footer chrome around the same content region the
// preview shows, referencing the shared stylesheet and script by
// relative path.
func (r Renderer) FullPage(p post.Post) string {
	site := r.siteName()

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("    <meta charset=\"UTF-8\">\n")
	buf.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	buf.WriteString("    <title>" + html.EscapeString(p.Title) + " | " + html.EscapeString(site) + "</title>\n")
	buf.WriteString("    <link rel=\"stylesheet\" href=\"../styles.css\">\n")
	buf.WriteString("    <link rel=\"preconnect\" href=\"https://fonts.googleapis.com\">\n")
	buf.WriteString("    <link rel=\"preconnect\" href=\"https://fonts.gstatic.com\" crossorigin>\n")
	buf.WriteString("    <link href=\"https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap\" rel=\"stylesheet\">\n")
	buf.WriteString("</head>\n<body>\n")

	buf.WriteString("    <nav class=\"navbar\">\n")
	buf.WriteString("        <div class=\"container\">\n")
	buf.WriteString("            <div class=\"nav-content\">\n")
	buf.WriteString("                <a href=\"../index.html\" class=\"logo\">" + html.EscapeString(site) + "</a>\n")
	buf.WriteString("                <div class=\"nav-links\">\n")
	buf.WriteString("                    <a href=\"../index.html\">Blog</a>\n")
	buf.WriteString("                    <a href=\"#projects\">Projects</a>\n")
	buf.WriteString("                    <a href=\"#research\">Research</a>\n")
	buf.WriteString("                    <a href=\"#about\">About</a>\n")
	buf.WriteString("                    <a href=\"#contact\" class=\"nav-cta\">Get in Touch</a>\n")
	buf.WriteString("                </div>\n")
	buf.WriteString("            </div>\n")
	buf.WriteString("        </div>\n")
	buf.WriteString("    </nav>\n\n")

	buf.WriteString("    <main class=\"main-content\">\n")
	buf.WriteString("        <div class=\"container\">\n")
	buf.WriteString("            <a href=\"../index.html\" class=\"back-link\">← Back to all posts</a>\n\n")
	buf.WriteString("            <article class=\"blog-post\">\n")
	buf.WriteString("                <div class=\"post-hero-section " + string(p.HeroColor.Clamp()) + "\">\n")
	buf.WriteString("                    <div class=\"post-hero-illustration\">" + html.EscapeString(p.Emoji()) + "</div>\n")
	buf.WriteString("                </div>\n\n")
	buf.WriteString("                <div class=\"post-article\">\n")
	buf.WriteString("                    <header class=\"post-header\">\n")
	buf.WriteString("                        <div class=\"post-meta-top\">\n")
	buf.WriteString("                            <span class=\"post-category-badge\">" + html.EscapeString(p.Category) + "</span>\n")
	buf.WriteString("                        </div>\n")
	buf.WriteString("                        <h1 class=\"post-full-title\">" + html.EscapeString(p.Title) + "</h1>\n")
	buf.WriteString("                        <div class=\"post-meta-bottom\">\n")
	buf.WriteString("                            <span>" + html.EscapeString(FormatDate(p.Date)) + "</span>\n")
	buf.WriteString("                            <span class=\"separator\">•</span>\n")
	buf.WriteString("                            <span>" + strconv.Itoa(ReadingMinutes(p)) + " min read</span>\n")
	buf.WriteString("                        </div>\n")
	buf.WriteString("                    </header>\n\n")
	buf.WriteString("                    <div class=\"post-content\">")
	writeBlocks(&buf, p.Blocks, "\n\n", "\n\n")
	writeReferences(&buf, p.References)
	buf.WriteString("\n                    </div>\n")
	buf.WriteString("                </div>\n")
	buf.WriteString("            </article>\n")
	buf.WriteString("        </div>\n")
	buf.WriteString("    </main>\n\n")

	buf.WriteString("    <footer class=\"footer\">\n")
	buf.WriteString("        <div class=\"container\">\n")
	buf.WriteString("            <div class=\"footer-content\">\n")
	buf.WriteString("                <div class=\"footer-links\">\n")
	buf.WriteString("                    <a href=\"#privacy\">Privacy</a>\n")
	buf.WriteString("                    <a href=\"#terms\">Terms</a>\n")
	buf.WriteString("                    <a href=\"https://github.com\" target=\"_blank\">GitHub</a>\n")
	buf.WriteString("                    <a href=\"https://twitter.com\" target=\"_blank\">Twitter</a>\n")
	buf.WriteString("                    <a href=\"https://linkedin.com\" target=\"_blank\">LinkedIn</a>\n")
	buf.WriteString("                </div>\n")
	buf.WriteString("                <p class=\"footer-copyright\">© " + strconv.Itoa(time.Now().Year()) + " " + html.EscapeString(site) + ". All rights reserved.</p>\n")
	buf.WriteString("            </div>\n")
	buf.WriteString("        </div>\n")
	buf.WriteString("    </footer>\n\n")
	buf.WriteString("    <script src=\"../script.js\"></script>\n")
	buf.WriteString("</body>\n</html>")
	return buf.String()
}

// IndexCard renders the snippet inserted into the blog index page,
// linking to the exported document by its derived filename.
func (r Renderer) IndexCard(p post.Post) string {
	var buf bytes.Buffer
	buf.WriteString("<article class=\"post-card\">\n")
	buf.WriteString("    <div class=\"post-hero " + string(p.HeroColor.Clamp()) + "\">\n")
	buf.WriteString("        <div class=\"post-hero-icon\">" + html.EscapeString(p.Emoji()) + "</div>\n")
	buf.WriteString("    </div>\n")
	buf.WriteString("    <div class=\"post-card-content\">\n")
	buf.WriteString("        <span class=\"post-category\">" + html.EscapeString(p.Category) + "</span>\n")
	buf.WriteString("        <h3 class=\"post-card-title\">\n")
	buf.WriteString("            <a href=\"posts/" + Filename(p.Title) + "\">" + html.EscapeString(p.Title) + "</a>\n")
	buf.WriteString("        </h3>\n")
	buf.WriteString("        <p class=\"post-card-excerpt\">\n")
	buf.WriteString("            " + html.EscapeString(Excerpt(p)) + "\n")
	buf.WriteString("        </p>\n")
	buf.WriteString("        <div class=\"post-card-meta\">\n")
	buf.WriteString("            <span>" + html.EscapeString(FormatDate(p.Date)) + "</span>\n")
	buf.WriteString("            <span>•</span>\n")
	buf.WriteString("            <span>" + strconv.Itoa(ReadingMinutes(p)) + " min read</span>\n")
	buf.WriteString("        </div>\n")
	buf.WriteString("    </div>\n")
	buf.WriteString("</article>")
	return buf.String()
}

// Block renders a single content block. It is total: every variant with
// all optional fields absent yields a string, unknown or uninitialized
// variants yield "", and a half-filled block (image without data, video
// without an id, list without items) contributes nothing rather than
// breaking the document.
func Block(b post.Block) string {
	switch b.Type {
	case post.BlockParagraph:
		return "<p>" + html.EscapeString(b.Content) + "</p>"

	case post.BlockHeading:
		tag := b.Level.Tag()
		return "<" + tag + ">" + html.EscapeString(b.Content) + "</" + tag + ">"

	case post.BlockImage:
		if b.ImageData == "" {
			return ""
		}
		var buf bytes.Buffer
		buf.WriteString(`<figure style="margin: 1.5rem 0;">`)
		buf.WriteString(`<img src="` + html.EscapeString(b.ImageData) + `" alt="` + html.EscapeString(b.Caption) + `" style="max-width: 100%; border-radius: 8px;">`)
		if b.Caption != "" {
			buf.WriteString(`<figcaption style="text-align: center; color: var(--color-text-muted); font-size: 0.875rem; margin-top: 0.5rem;">` + html.EscapeString(b.Caption) + `</figcaption>`)
		}
		buf.WriteString(`</figure>`)
		return buf.String()

	case post.BlockVideo:
		if b.VideoID == "" {
			return ""
		}
		var buf bytes.Buffer
		buf.WriteString(`<figure style="margin: 2rem 0;">`)
		buf.WriteString(`<div class="video-container" style="position: relative; padding-bottom: 56.25%; height: 0; overflow: hidden; border-radius: 8px;">`)
		buf.WriteString(`<iframe src="` + youtube.EmbedURL(b.VideoID, b.Timestamp) + `"`)
		buf.WriteString(` style="position: absolute; top: 0; left: 0; width: 100%; height: 100%; border: 0;"`)
		buf.WriteString(` allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"`)
		buf.WriteString(` allowfullscreen loading="lazy"></iframe>`)
		buf.WriteString(`</div>`)
		if b.Caption != "" {
			buf.WriteString(`<figcaption style="text-align: center; color: var(--color-text-muted); font-size: 0.875rem; margin-top: 0.5rem;">` + html.EscapeString(b.Caption) + `</figcaption>`)
		}
		buf.WriteString(`</figure>`)
		return buf.String()

	case post.BlockCode:
		return "<pre><code>" + html.EscapeString(b.Content) + "</code></pre>"

	case post.BlockQuote:
		var buf bytes.Buffer
		buf.WriteString("<blockquote>")
		buf.WriteString(html.EscapeString(b.Content))
		if b.Attribution != "" {
			buf.WriteString("<cite>- " + html.EscapeString(b.Attribution) + "</cite>")
		}
		buf.WriteString("</blockquote>")
		return buf.String()

	case post.BlockList:
		items := post.FilterEmpty(b.Items)
		if len(items) == 0 {
			return ""
		}
		tag := b.ListType.Tag()
		var buf bytes.Buffer
		buf.WriteString("<" + tag + ">")
		for _, item := range items {
			buf.WriteString("<li>" + html.EscapeString(item) + "</li>")
		}
		buf.WriteString("</" + tag + ">")
		return buf.String()

	default:
		return ""
	}
}

// textFlow reports whether a block participates in the text column for
// the image spacing rule.
func textFlow(b post.Block) bool {
	switch b.Type {
	case post.BlockParagraph, post.BlockHeading, post.BlockList:
		return true
	}
	return false
}

// writeBlocks renders the block sequence, inserting the vertical-spacing
// marker on each side of an image that sits next to a text-flow block.
func writeBlocks(buf *bytes.Buffer, blocks []post.Block, before, after string) {
	for i, b := range blocks {
		if b.Type == post.BlockImage && i > 0 && textFlow(blocks[i-1]) {
			buf.WriteString(before)
		}
		buf.WriteString(Block(b))
		if b.Type == post.BlockImage && i+1 < len(blocks) && textFlow(blocks[i+1]) {
			buf.WriteString(after)
		}
	}
}

// writeReferences renders the trailing References section. The section
// appears only when at least one reference has both fields populated.
func writeReferences(buf *bytes.Buffer, refs []post.Reference) {
	any := false
	for _, ref := range refs {
		if ref.Renderable() {
			any = true
			break
		}
	}
	if !any {
		return
	}
	buf.WriteString("<h2>References</h2><ul>")
	for _, ref := range refs {
		if !ref.Renderable() {
			continue
		}
		fmt.Fprintf(buf, `<li><a href="%s" target="_blank">%s</a></li>`,
			html.EscapeString(ref.URL), html.EscapeString(ref.Title))
	}
	buf.WriteString("</ul>")
}
