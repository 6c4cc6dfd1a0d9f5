package blockpress

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/levkoz/blockpress/post"
)

// editorSession pairs a document with the lock that serializes its
// mutations. The authoring model is single-user, but echo serves
// requests concurrently, so each document still needs a guard.
type editorSession struct {
	mu       sync.Mutex
	doc      *post.Document
	lastUsed time.Time
}

// sessionRegistry holds the live editor sessions keyed by opaque id.
// Sessions are in-memory only; durability comes from the draft slot.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*editorSession
	ttl      time.Duration
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*editorSession),
		ttl:      ttl,
	}
}

// Create registers a new session around doc and returns its id.
func (r *sessionRegistry) Create(doc *post.Document) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.evictStale()
	r.sessions[id] = &editorSession{doc: doc, lastUsed: time.Now()}
	r.mu.Unlock()
	return id
}

// With runs fn while holding the session's lock. It returns false when
// the id is unknown or expired.
func (r *sessionRegistry) With(id string, fn func(doc *post.Document)) bool {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	if ok {
		sess.lastUsed = time.Now()
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.doc)
	return true
}

// Delete drops a session. Unknown ids are a no-op.
func (r *sessionRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// evictStale removes sessions idle past the TTL. Caller holds r.mu.
func (r *sessionRegistry) evictStale() {
	if r.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-r.ttl)
	for id, sess := range r.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
