package post

import "fmt"

// Direction selects which neighbor a block swaps with.
type Direction int

// Move directions.
const (
	MoveUp   Direction = -1
	MoveDown Direction = 1
)

// Document is one authoring session: the post under edit plus the
// private counter that mints block IDs. Every mutation goes through its
// methods; all of them are total. An unknown block id is a silent
// no-op, matching the forgiving editor UX.
//
// A Document is not safe for concurrent use; callers that share one
// across goroutines must serialize access.
type Document struct {
	post   Post
	nextID int
}

// NewDocument returns an empty document with default hero styling.
func NewDocument() *Document {
	return &Document{post: Post{HeroColor: DefaultHeroColor}}
}

// Restore returns a document seeded from a previously saved post, e.g. a
// loaded draft.
func Restore(p Post) *Document {
	d := NewDocument()
	d.Load(p)
	return d
}

// Load replaces the document's content with p, e.g. when a draft is
// loaded into a running session. The id counter only moves forward, past
// every loaded block id, so ids are never reissued.
func (d *Document) Load(p Post) {
	d.post = p
	if d.post.HeroColor == "" {
		d.post.HeroColor = DefaultHeroColor
	}
	for _, b := range p.Blocks {
		var n int
		if _, err := fmt.Sscanf(b.ID, "block-%d", &n); err == nil && n >= d.nextID {
			d.nextID = n + 1
		}
	}
}

// Post returns a snapshot of the current post. The returned value shares
// no block slice with the document, so renderers can hold it safely.
func (d *Document) Post() Post {
	out := d.post
	out.Blocks = append([]Block(nil), d.post.Blocks...)
	out.References = append([]Reference(nil), d.post.References...)
	return out
}

// Append adds a new empty block of the given type at the tail and
// returns its id.
func (d *Document) Append(t BlockType) string {
	id := fmt.Sprintf("block-%d", d.nextID)
	d.nextID++
	d.post.Blocks = append(d.post.Blocks, Block{ID: id, Type: t})
	return id
}

// ChangeType switches a block to a new variant, discarding all prior
// variant fields and preserving id and position.
func (d *Document) ChangeType(id string, t BlockType) {
	b := d.find(id)
	if b == nil {
		return
	}
	b.Type = t
	b.resetVariantFields()
}

// Update applies a partial field update to a block. Only fields relevant
// to the block's current variant are written; the rest of the patch is
// ignored. An absent (nil) field leaves the stored value untouched, so a
// caller whose caption input is missing simply does not change the
// caption.
func (d *Document) Update(id string, patch BlockPatch) {
	b := d.find(id)
	if b == nil {
		return
	}
	switch b.Type {
	case BlockParagraph:
		setString(&b.Content, patch.Content)
	case BlockHeading:
		if patch.Level != nil {
			b.Level = *patch.Level
		}
		setString(&b.Content, patch.Content)
	case BlockImage:
		setString(&b.Caption, patch.Caption)
	case BlockVideo:
		setString(&b.Caption, patch.Caption)
	case BlockCode:
		if patch.Language != nil {
			b.Language = *patch.Language
		}
		setString(&b.Content, patch.Content)
	case BlockQuote:
		setString(&b.Content, patch.Content)
		setString(&b.Attribution, patch.Attribution)
	case BlockList:
		if patch.ListType != nil {
			b.ListType = *patch.ListType
		}
		if patch.Items != nil {
			b.Items = FilterEmpty(patch.Items)
		}
	}
}

// SetImageData stores the inline image representation produced by the
// intake boundary. Until it arrives the block keeps rendering as empty.
func (d *Document) SetImageData(id, dataURI string) {
	if b := d.find(id); b != nil && b.Type == BlockImage {
		b.ImageData = dataURI
	}
}

// SetVideo records a resolved video reference alongside the raw URL the
// user entered.
func (d *Document) SetVideo(id, videoID, rawURL string, timestamp int) {
	if b := d.find(id); b != nil && b.Type == BlockVideo {
		b.VideoID = videoID
		b.VideoURL = rawURL
		b.Timestamp = timestamp
	}
}

// Move swaps a block with its neighbor in the given direction. Moving
// the first block up or the last block down is a no-op.
func (d *Document) Move(id string, dir Direction) {
	idx := d.index(id)
	if idx < 0 {
		return
	}
	swap := idx + int(dir)
	if swap < 0 || swap >= len(d.post.Blocks) {
		return
	}
	d.post.Blocks[idx], d.post.Blocks[swap] = d.post.Blocks[swap], d.post.Blocks[idx]
}

// Remove deletes a block by id.
func (d *Document) Remove(id string) {
	idx := d.index(id)
	if idx < 0 {
		return
	}
	d.post.Blocks = append(d.post.Blocks[:idx], d.post.Blocks[idx+1:]...)
}

// Metadata is the patch shape for post-level fields. Nil fields are left
// untouched.
type Metadata struct {
	Title     *string    `json:"title,omitempty"`
	Category  *string    `json:"category,omitempty"`
	Date      *string    `json:"date,omitempty"`
	Excerpt   *string    `json:"excerpt,omitempty"`
	HeroColor *HeroColor `json:"heroColor,omitempty"`
	HeroEmoji *string    `json:"heroEmoji,omitempty"`
}

// SetMetadata applies a partial metadata update. Hero colors outside the
// palette clamp to the default.
func (d *Document) SetMetadata(m Metadata) {
	setString(&d.post.Title, m.Title)
	setString(&d.post.Category, m.Category)
	setString(&d.post.Date, m.Date)
	setString(&d.post.Excerpt, m.Excerpt)
	if m.HeroColor != nil {
		d.post.HeroColor = m.HeroColor.Clamp()
	}
	setString(&d.post.HeroEmoji, m.HeroEmoji)
}

// SetReferences replaces the reference list, dropping entries where both
// fields are empty.
func (d *Document) SetReferences(refs []Reference) {
	d.post.References = FilterReferences(refs)
}

// Clear resets the document to the empty state while keeping the id
// counter, so ids from the cleared session are never reissued.
func (d *Document) Clear() {
	d.post = Post{HeroColor: DefaultHeroColor}
}

func (d *Document) find(id string) *Block {
	if idx := d.index(id); idx >= 0 {
		return &d.post.Blocks[idx]
	}
	return nil
}

func (d *Document) index(id string) int {
	for i := range d.post.Blocks {
		if d.post.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}
