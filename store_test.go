package blockpress

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/levkoz/blockpress/post"
)

func newTestStore(t *testing.T) *DraftStore {
	t.Helper()
	s, err := NewDraftStore(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("NewDraftStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDraftRoundTrip(t *testing.T) {
	s := newTestStore(t)

	saved := post.Post{
		Title:     "Draft in progress",
		Category:  "Systems",
		Date:      "2025-03-09",
		Excerpt:   "short version",
		HeroColor: post.HeroTeal,
		HeroEmoji: "🚀",
		Blocks: []post.Block{
			{ID: "block-0", Type: post.BlockParagraph, Content: "hello"},
			{ID: "block-1", Type: post.BlockVideo, VideoID: "dQw4w9WgXcQ", Timestamp: 42, Caption: "demo"},
			{ID: "block-2", Type: post.BlockList, ListType: post.ListOrdered, Items: []string{"a", "b"}},
		},
		References: []post.Reference{{Title: "Go", URL: "https://go.dev"}},
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("Load = %+v, want %+v", loaded, saved)
	}
}

func TestLoadWithoutSave(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Load error = %v, want ErrNoDraft", err)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(post.Post{Title: "first"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(post.Post{Title: "second"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Title != "second" {
		t.Errorf("Title = %q, want %q", loaded.Title, "second")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(post.Post{Title: "doomed"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Load after Clear = %v, want ErrNoDraft", err)
	}

	// Clearing an empty slot is a no-op.
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty slot: %v", err)
	}
}

func TestLoadDegradesGracefully(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", "{}"},
		{"not json", "not json at all"},
		{"partial fields", `{"title":"only a title"}`},
		{"unknown hero color", `{"title":"t","heroColor":"plaid"}`},
	}
	for _, tt := range tests {
		s := newTestStore(t)
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO drafts (slot, data) VALUES (?, ?)`, draftSlot, tt.data); err != nil {
			t.Fatalf("%s: seed: %v", tt.name, err)
		}

		loaded, err := s.Load()
		if err != nil {
			t.Errorf("%s: Load error: %v", tt.name, err)
			continue
		}
		if loaded.HeroColor != post.DefaultHeroColor && !loaded.HeroColor.Valid() {
			t.Errorf("%s: HeroColor = %q, want palette key", tt.name, loaded.HeroColor)
		}
		if loaded.Blocks == nil || loaded.References == nil {
			t.Errorf("%s: nil slices after load: %+v", tt.name, loaded)
		}
	}
}

func TestSavedDraftSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drafts.db")

	s, err := NewDraftStore(path)
	if err != nil {
		t.Fatalf("NewDraftStore: %v", err)
	}
	if err := s.Save(post.Post{Title: "persisted"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	s2, err := NewDraftStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	loaded, err := s2.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if loaded.Title != "persisted" {
		t.Errorf("Title = %q, want %q", loaded.Title, "persisted")
	}
}
