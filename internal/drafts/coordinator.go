// Package drafts debounces editor changes into draft saves. One
// Coordinator manages one editing session: an account working on one
// template bucket.
package drafts

import (
	"context"
	"errors"
	"sync"
	"time"

	"resumeforge/internal/logging"
	"resumeforge/internal/storage"
	"resumeforge/pkg/models"
)

// Editor views. Autosave runs only while the live editor is active.
const (
	ViewLiveEditor = "live-editor"
	ViewTemplates  = "templates"
	ViewDownload   = "download"
)

// DefaultQuietPeriod is the debounce window between the last edit and the
// persisted save.
const DefaultQuietPeriod = 1200 * time.Millisecond

// Coordinator debounces Touch calls into at most one save per quiet
// period. Saves are suppressed while generation is in flight or while the
// session is outside the live editor; the pending content is kept and
// flushed once saving resumes.
type Coordinator struct {
	store    storage.DraftStore
	activity storage.ActivityStore
	logger   logging.Logger
	quiet    time.Duration

	mu         sync.Mutex
	accountID  string
	templateID string
	content    models.ResumeData
	dirty      bool
	generating bool
	activeView string
	seeded     bool
	timer      *time.Timer
	closed     bool
}

// NewCoordinator creates a coordinator for one (account, template bucket)
// session. activity may be nil when no audit trail is wanted.
func NewCoordinator(store storage.DraftStore, activity storage.ActivityStore, accountID, templateID string, quiet time.Duration) *Coordinator {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Coordinator{
		store:      store,
		activity:   activity,
		logger:     logging.GetGlobalLogger(),
		quiet:      quiet,
		accountID:  accountID,
		templateID: templateID,
		activeView: ViewLiveEditor,
	}
}

// LoadInitial resolves the session's starting content. Imported data seeded
// before the load takes precedence over any stored draft. A missing draft or
// a fetch failure both resolve to the zero ResumeData; load never fails the
// session.
func (c *Coordinator) LoadInitial(ctx context.Context) models.ResumeData {
	c.mu.Lock()
	if c.seeded {
		content := c.content
		c.mu.Unlock()
		return content
	}
	c.mu.Unlock()

	draft, err := c.store.GetLatestDraft(ctx, c.accountID, c.templateID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("Failed to load draft, starting empty", map[string]interface{}{
				"account_id": c.accountID,
				"error":      err.Error(),
			})
		}
		return models.ResumeData{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// An import that raced the fetch still wins.
	if c.seeded {
		return c.content
	}
	c.content = draft.Content
	return c.content
}

// SeedFromImport replaces the session content with imported data and saves
// it immediately so a reload cannot resurrect the stale draft.
func (c *Coordinator) SeedFromImport(ctx context.Context, data models.ResumeData) error {
	c.mu.Lock()
	c.content = data
	c.seeded = true
	c.dirty = false
	c.stopTimerLocked()
	c.mu.Unlock()

	return c.save(ctx, data)
}

// Touch records an editor change and (re)starts the quiet-period timer.
// Rapid successive calls collapse into a single save of the final content.
func (c *Coordinator) Touch(data models.ResumeData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.content = data
	c.dirty = true

	if c.generating || c.activeView != ViewLiveEditor {
		// Keep the content; the timer restarts when saving resumes.
		c.stopTimerLocked()
		return
	}

	c.resetTimerLocked()
}

// SetGenerating marks generation in flight. Autosave pauses while true and
// resumes, flushing any pending edit, when cleared.
func (c *Coordinator) SetGenerating(generating bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generating = generating
	c.resumeOrPauseLocked()
}

// SetActiveView records which editor surface is active. Autosave runs only
// in the live editor.
func (c *Coordinator) SetActiveView(view string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeView = view
	c.resumeOrPauseLocked()
}

// Flush saves any pending content immediately, bypassing the quiet period.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	content := c.content
	c.dirty = false
	c.stopTimerLocked()
	c.mu.Unlock()

	return c.save(ctx, content)
}

// Close stops the coordinator, flushing any pending edit.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.Flush(ctx)
}

func (c *Coordinator) resumeOrPauseLocked() {
	if c.closed {
		return
	}
	if c.generating || c.activeView != ViewLiveEditor {
		c.stopTimerLocked()
		return
	}
	if c.dirty {
		c.resetTimerLocked()
	}
}

func (c *Coordinator) resetTimerLocked() {
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.quiet, c.fire)
}

func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire runs on timer expiry and persists the latest content.
func (c *Coordinator) fire() {
	c.mu.Lock()
	if c.closed || !c.dirty || c.generating || c.activeView != ViewLiveEditor {
		c.mu.Unlock()
		return
	}
	content := c.content
	c.dirty = false
	c.timer = nil
	c.mu.Unlock()

	if err := c.save(context.Background(), content); err != nil {
		// Keep the edit; the next Touch retries.
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
	}
}

func (c *Coordinator) save(ctx context.Context, content models.ResumeData) error {
	draft := &models.Draft{
		AccountID:  c.accountID,
		TemplateID: c.templateID,
		Content:    content,
	}

	if err := c.store.SaveDraft(ctx, draft); err != nil {
		c.logger.Error("Failed to save draft", map[string]interface{}{
			"account_id":  c.accountID,
			"template_id": c.templateID,
			"error":       err.Error(),
		})
		return err
	}

	if c.activity != nil {
		if err := c.activity.Record(ctx, &models.ActivityLog{
			AccountID: c.accountID,
			Action:    models.ActionResumeDraftSave,
		}); err != nil {
			c.logger.Warn("Failed to record draft save activity", map[string]interface{}{
				"account_id": c.accountID,
				"error":      err.Error(),
			})
		}
	}

	return nil
}
