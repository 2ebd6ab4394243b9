package drafts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// countingDraftStore wraps a DraftStore and counts saves.
type countingDraftStore struct {
	storage.DraftStore

	mu    sync.Mutex
	saves int
}

func newCountingStore() *countingDraftStore {
	return &countingDraftStore{DraftStore: storage.NewMemoryDraftStore()}
}

func (s *countingDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.DraftStore.SaveDraft(ctx, draft)
}

func (s *countingDraftStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func waitForSaves(t *testing.T, store *countingDraftStore, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.saveCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d saves, got %d", want, store.saveCount())
}

func resumeWithRole(role string) models.ResumeData {
	return models.ResumeData{TargetRole: role}
}

func TestRapidEditsCollapseIntoOneSave(t *testing.T) {
	store := newCountingStore()
	c := NewCoordinator(store, nil, "acct-1", "", 30*time.Millisecond)
	defer c.Close(context.Background())

	for _, role := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		c.Touch(resumeWithRole(role))
		time.Sleep(5 * time.Millisecond)
	}

	waitForSaves(t, store, 1)
	// Let any stray timer fire before asserting the count is exact.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, store.saveCount())

	draft, err := store.GetLatestDraft(context.Background(), "acct-1", "")
	require.NoError(t, err)
	assert.Equal(t, "abcde", draft.Content.TargetRole)
}

func TestTouchSuppressedWhileGenerating(t *testing.T) {
	store := newCountingStore()
	c := NewCoordinator(store, nil, "acct-1", "", 20*time.Millisecond)
	defer c.Close(context.Background())

	c.SetGenerating(true)
	c.Touch(resumeWithRole("during generation"))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	// Clearing the flag flushes the held edit after the quiet period.
	c.SetGenerating(false)
	waitForSaves(t, store, 1)

	draft, err := store.GetLatestDraft(context.Background(), "acct-1", "")
	require.NoError(t, err)
	assert.Equal(t, "during generation", draft.Content.TargetRole)
}

func TestTouchSuppressedOutsideLiveEditor(t *testing.T) {
	store := newCountingStore()
	c := NewCoordinator(store, nil, "acct-1", "", 20*time.Millisecond)
	defer c.Close(context.Background())

	c.SetActiveView(ViewTemplates)
	c.Touch(resumeWithRole("on templates tab"))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	c.SetActiveView(ViewLiveEditor)
	waitForSaves(t, store, 1)
}

func TestImportedDataBeatsStoredDraft(t *testing.T) {
	store := newCountingStore()
	ctx := context.Background()

	// A stale draft exists from an earlier session.
	require.NoError(t, store.SaveDraft(ctx, &models.Draft{
		AccountID: "acct-1",
		Content:   resumeWithRole("stale draft"),
	}))

	c := NewCoordinator(store, nil, "acct-1", "", 20*time.Millisecond)
	defer c.Close(ctx)

	require.NoError(t, c.SeedFromImport(ctx, resumeWithRole("imported")))

	got := c.LoadInitial(ctx)
	assert.Equal(t, "imported", got.TargetRole)

	// The import overwrote the stored draft too.
	draft, err := store.GetLatestDraft(ctx, "acct-1", "")
	require.NoError(t, err)
	assert.Equal(t, "imported", draft.Content.TargetRole)
}

func TestLoadInitialReturnsStoredDraft(t *testing.T) {
	store := newCountingStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{
		AccountID: "acct-1",
		Content:   resumeWithRole("resumed"),
	}))

	c := NewCoordinator(store, nil, "acct-1", "", 20*time.Millisecond)
	defer c.Close(ctx)

	got := c.LoadInitial(ctx)
	assert.Equal(t, "resumed", got.TargetRole)
}

// failingDraftStore always errors on reads.
type failingDraftStore struct {
	storage.DraftStore
}

func (s failingDraftStore) GetLatestDraft(context.Context, string, string) (*models.Draft, error) {
	return nil, errors.New("connection refused")
}

func TestLoadInitialFetchErrorStartsEmpty(t *testing.T) {
	store := failingDraftStore{DraftStore: storage.NewMemoryDraftStore()}
	c := NewCoordinator(store, nil, "acct-1", "", 20*time.Millisecond)
	defer c.Close(context.Background())

	got := c.LoadInitial(context.Background())
	assert.Equal(t, models.ResumeData{}, got)
}

func TestFlushSavesImmediately(t *testing.T) {
	store := newCountingStore()
	c := NewCoordinator(store, nil, "acct-1", "", 10*time.Second)
	defer c.Close(context.Background())

	c.Touch(resumeWithRole("pending"))
	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, 1, store.saveCount())

	// No pending edit, flush is a no-op.
	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, 1, store.saveCount())
}

func TestDraftSaveRecordsActivity(t *testing.T) {
	store := newCountingStore()
	activity := storage.NewMemoryActivityStore()
	c := NewCoordinator(store, activity, "acct-1", "", 10*time.Second)
	defer c.Close(context.Background())

	c.Touch(resumeWithRole("audited"))
	require.NoError(t, c.Flush(context.Background()))

	entries, err := activity.ListByAccount(context.Background(), "acct-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionResumeDraftSave, entries[0].Action)
}
