package blockpress

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/levkoz/blockpress/post"
)

// ErrNoDraft is returned by Load when the slot has never been written.
var ErrNoDraft = errors.New("no draft saved")

// draftSlot is the single named key the editor persists into. There is
// no draft history; saving overwrites the slot.
const draftSlot = "blogPostDraft"

// DraftStore persists the one draft slot in a SQLite database.
type DraftStore struct {
	db *sql.DB
}

// NewDraftStore opens (or creates) the SQLite database at path, ensures
// the data directory exists, and runs schema setup.
func NewDraftStore(path string) (*DraftStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout so a save racing a load waits instead of
	// returning SQLITE_BUSY; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	s := &DraftStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *DraftStore) Close() error {
	return s.db.Close()
}

func (s *DraftStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    slot TEXT PRIMARY KEY,
    data TEXT NOT NULL
);
`)
	return err
}

// Save serializes the full post into the draft slot, overwriting any
// prior value.
func (s *DraftStore) Save(p post.Post) error {
	data, err := json.Marshal(draftFromPost(p))
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO drafts (slot, data) VALUES (?, ?)`, draftSlot, string(data))
	return err
}

// Load restores the saved post. A missing slot returns ErrNoDraft; a
// malformed or schema-older value never fails; every absent field
// degrades to its default instead.
func (s *DraftStore) Load() (post.Post, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM drafts WHERE slot = ?`, draftSlot).Scan(&data)
	if err == sql.ErrNoRows {
		return post.Post{}, ErrNoDraft
	}
	if err != nil {
		return post.Post{}, err
	}
	return decodeDraft([]byte(data)), nil
}

// Clear empties the slot. Clearing an already empty slot is a no-op.
func (s *DraftStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE slot = ?`, draftSlot)
	return err
}

// draft is the wire format of the slot. It mirrors post.Post but keeps
// every field optional so partially written values still decode.
type draft struct {
	Title      string           `json:"title"`
	Category   string           `json:"category"`
	Date       string           `json:"date"`
	Excerpt    string           `json:"excerpt,omitempty"`
	HeroColor  string           `json:"heroColor,omitempty"`
	HeroEmoji  string           `json:"heroEmoji,omitempty"`
	Blocks     []post.Block     `json:"blocks"`
	References []post.Reference `json:"references"`
}

func draftFromPost(p post.Post) draft {
	return draft{
		Title:      p.Title,
		Category:   p.Category,
		Date:       p.Date,
		Excerpt:    p.Excerpt,
		HeroColor:  string(p.HeroColor),
		HeroEmoji:  p.HeroEmoji,
		Blocks:     p.Blocks,
		References: p.References,
	}
}

// decodeDraft is deliberately forgiving: JSON that does not parse at all
// yields an empty default post, and each missing field independently
// falls back to its default, so an old or truncated draft still loads.
func decodeDraft(data []byte) post.Post {
	var d draft
	_ = json.Unmarshal(data, &d)
	p := post.Post{
		Title:      d.Title,
		Category:   d.Category,
		Date:       d.Date,
		Excerpt:    d.Excerpt,
		HeroColor:  post.HeroColor(d.HeroColor).Clamp(),
		HeroEmoji:  d.HeroEmoji,
		Blocks:     d.Blocks,
		References: d.References,
	}
	if p.Blocks == nil {
		p.Blocks = []post.Block{}
	}
	if p.References == nil {
		p.References = []post.Reference{}
	}
	return p
}
