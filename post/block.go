package post

// BlockType discriminates the seven content block variants.
type BlockType string

// Block variants.
const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockCode      BlockType = "code"
	BlockQuote     BlockType = "quote"
	BlockList      BlockType = "list"
)

// Valid reports whether t is one of the seven variants.
func (t BlockType) Valid() bool {
	switch t {
	case BlockParagraph, BlockHeading, BlockImage, BlockVideo, BlockCode, BlockQuote, BlockList:
		return true
	}
	return false
}

// HeadingLevel is the rendered element for heading blocks.
type HeadingLevel string

// Heading levels.
const (
	HeadingH2 HeadingLevel = "h2"
	HeadingH3 HeadingLevel = "h3"
)

// Tag returns the HTML element name for the level, defaulting to h2 for
// the zero value or anything outside the enum.
func (l HeadingLevel) Tag() string {
	if l == HeadingH3 {
		return "h3"
	}
	return "h2"
}

// ListType selects ordered or unordered list rendering.
type ListType string

// List types.
const (
	ListUnordered ListType = "ul"
	ListOrdered   ListType = "ol"
)

// Tag returns the HTML element name for the list type, defaulting to ul.
func (t ListType) Tag() string {
	if t == ListOrdered {
		return "ol"
	}
	return "ul"
}

// Language is a code block's syntax label.
type Language string

// Languages offered by the code block editor.
const (
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
	LangTypeScript Language = "typescript"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPHP        Language = "php"
	LangSQL        Language = "sql"
	LangBash       Language = "bash"
)

// Languages lists the fixed set offered by the editor, in menu order.
func Languages() []Language {
	return []Language{
		LangJavaScript, LangPython, LangHTML, LangCSS, LangJava, LangCPP,
		LangTypeScript, LangGo, LangRust, LangPHP, LangSQL, LangBash,
	}
}

// Valid reports whether l is in the fixed language list.
func (l Language) Valid() bool {
	for _, known := range Languages() {
		if l == known {
			return true
		}
	}
	return false
}

// Block is one content unit of a post. The Type field discriminates which
// of the remaining fields are meaningful; the flat layout matches the
// draft wire format field-for-field.
//
//	paragraph: Content
//	heading:   Level, Content
//	image:     ImageData, Caption
//	video:     VideoID, VideoURL, Timestamp, Caption
//	code:      Language, Content
//	quote:     Content, Attribution
//	list:      ListType, Items
//
// A block's ID is assigned once by the owning Document and never reused;
// ordering comes solely from position in Post.Blocks.
type Block struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`

	Content     string       `json:"content,omitempty"`
	Level       HeadingLevel `json:"level,omitempty"`
	ImageData   string       `json:"imageData,omitempty"`
	Caption     string       `json:"caption,omitempty"`
	VideoID     string       `json:"videoId,omitempty"`
	VideoURL    string       `json:"videoUrl,omitempty"`
	Timestamp   int          `json:"timestamp,omitempty"`
	Language    Language     `json:"language,omitempty"`
	Attribution string       `json:"attribution,omitempty"`
	ListType    ListType     `json:"listType,omitempty"`
	Items       []string     `json:"items,omitempty"`
}

// resetVariantFields clears everything except ID and Type. ChangeType
// uses this so a prior variant's data never leaks into the new one.
func (b *Block) resetVariantFields() {
	b.Content = ""
	b.Level = ""
	b.ImageData = ""
	b.Caption = ""
	b.VideoID = ""
	b.VideoURL = ""
	b.Timestamp = 0
	b.Language = ""
	b.Attribution = ""
	b.ListType = ""
	b.Items = nil
}

// BlockPatch is a partial update to a block's variant fields. Nil fields
// are left untouched; fields that do not apply to the block's current
// type are ignored. The type itself can only change via
// Document.ChangeType.
type BlockPatch struct {
	Content     *string       `json:"content,omitempty"`
	Level       *HeadingLevel `json:"level,omitempty"`
	Caption     *string       `json:"caption,omitempty"`
	Language    *Language     `json:"language,omitempty"`
	Attribution *string       `json:"attribution,omitempty"`
	ListType    *ListType     `json:"listType,omitempty"`
	Items       []string      `json:"items,omitempty"`
}
