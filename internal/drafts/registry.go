package drafts

import (
	"context"
	"sync"
	"time"

	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// sessionIdleTTL is how long a coordinator may sit untouched before the
// registry evicts it. Session keys come from clients, so the map must not
// grow without bound.
const sessionIdleTTL = time.Hour

// session pairs a coordinator with its last-use time for idle eviction.
type session struct {
	coordinator *Coordinator
	lastSeen    time.Time
}

// Registry hands out one Coordinator per (account, template bucket) so
// rapid autosave requests from the same session debounce server-side.
type Registry struct {
	store    storage.DraftStore
	activity storage.ActivityStore
	quiet    time.Duration
	idleTTL  time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry creates a coordinator registry backed by the given stores.
func NewRegistry(store storage.DraftStore, activity storage.ActivityStore, quiet time.Duration) *Registry {
	return &Registry{
		store:    store,
		activity: activity,
		quiet:    quiet,
		idleTTL:  sessionIdleTTL,
		sessions: make(map[string]*session),
	}
}

// Session returns the coordinator for the account's template bucket,
// creating it on first use.
func (r *Registry) Session(accountID, templateID string) *Coordinator {
	key := accountID + ":" + templateID
	now := time.Now()

	r.mu.Lock()
	s, ok := r.sessions[key]
	if !ok {
		s = &session{coordinator: NewCoordinator(r.store, r.activity, accountID, templateID, r.quiet)}
		r.sessions[key] = s
	}
	s.lastSeen = now
	c := s.coordinator
	r.mu.Unlock()

	if !ok {
		r.evictIdle(now)
	}
	return c
}

// evictIdle drops sessions untouched for idleTTL. An idle coordinator has
// flushed long ago (the quiet period is seconds), so closing it cannot
// lose an edit. Called without the lock held.
func (r *Registry) evictIdle(now time.Time) {
	r.mu.Lock()
	var stale []*Coordinator
	for key, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idleTTL {
			stale = append(stale, s.coordinator)
			delete(r.sessions, key)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		_ = c.Close(context.Background())
	}
}

// Touch records an edit for the session; the save lands after the quiet
// period.
func (r *Registry) Touch(accountID, templateID string, content models.ResumeData) {
	r.Session(accountID, templateID).Touch(content)
}

// Latest flushes any pending edit for the session and reads the stored
// draft, so a fetch right after an edit sees the edit.
func (r *Registry) Latest(ctx context.Context, accountID, templateID string) (*models.Draft, error) {
	if err := r.Session(accountID, templateID).Flush(ctx); err != nil {
		return nil, err
	}
	return r.store.GetLatestDraft(ctx, accountID, templateID)
}

// Close flushes and stops every live session.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	sessions := make([]*Coordinator, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s.coordinator)
	}
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	var firstErr error
	for _, c := range sessions {
		if err := c.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
