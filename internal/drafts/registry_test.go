package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReusesSessionPerAccountAndTemplate(t *testing.T) {
	r := NewRegistry(newCountingStore(), nil, 30*time.Millisecond)

	a := r.Session("acct-1", "classic_pro")
	b := r.Session("acct-1", "classic_pro")
	other := r.Session("acct-2", "classic_pro")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestRegistryLatestFlushesPendingEdit(t *testing.T) {
	store := newCountingStore()
	r := NewRegistry(store, nil, time.Minute)

	r.Touch("acct-1", "classic_pro", resumeWithRole("Platform Engineer"))

	draft, err := r.Latest(context.Background(), "acct-1", "classic_pro")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", draft.Content.TargetRole)
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(newCountingStore(), nil, 30*time.Millisecond)
	r.idleTTL = 50 * time.Millisecond

	r.Session("acct-stale", "classic_pro")
	time.Sleep(80 * time.Millisecond)

	// Creating a new session sweeps ones idle past the TTL.
	r.Session("acct-fresh", "classic_pro")

	r.mu.Lock()
	_, staleAlive := r.sessions["acct-stale:classic_pro"]
	_, freshAlive := r.sessions["acct-fresh:classic_pro"]
	r.mu.Unlock()

	assert.False(t, staleAlive)
	assert.True(t, freshAlive)
}

func TestRegistryTouchKeepsSessionAlive(t *testing.T) {
	store := newCountingStore()
	r := NewRegistry(store, nil, 10*time.Millisecond)
	r.idleTTL = 150 * time.Millisecond

	r.Touch("acct-1", "classic_pro", resumeWithRole("SRE"))
	time.Sleep(100 * time.Millisecond)
	r.Touch("acct-1", "classic_pro", resumeWithRole("SRE II"))
	time.Sleep(100 * time.Millisecond)

	// Each touch reset lastSeen, so a sweep triggered by a new session
	// leaves the active one in place.
	r.Session("acct-2", "classic_pro")

	r.mu.Lock()
	_, alive := r.sessions["acct-1:classic_pro"]
	r.mu.Unlock()
	assert.True(t, alive)
}
