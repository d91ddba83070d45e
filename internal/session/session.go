// Package session walks a learner through an ordered range of verses.
// The coordinator holds at most one live session; per-verse state changes
// stay the progress tracker's job, the coordinator only reads them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamdan/hifzi/internal/progress"
	"github.com/hamdan/hifzi/internal/quran"
)

// ErrNoSession is returned when an operation requires an active session.
var ErrNoSession = errors.New("no active session")

// Item pairs a verse's content with its learning state. The state pointer
// is live: tracker mutations made during the session show through it.
type Item struct {
	Verse quran.Verse
	State *progress.VerseState
}

// Session is one sitting over a verse range. It is ephemeral and never
// persisted; per-verse state outlives it through the tracker.
type Session struct {
	ID          string
	SurahNumber int
	SurahLabel  string
	RangeStart  int
	RangeEnd    int
	Items       []Item
	StartedAt   time.Time
	CompletedAt *time.Time

	cursor int
}

// Progress summarizes how much of the session's range is mastered.
type Progress struct {
	Total         int
	MasteredCount int
	Percentage    float64
}

// Coordinator manages the single live session.
type Coordinator struct {
	tracker *progress.Tracker
	active  *Session

	now func() time.Time
}

// NewCoordinator creates a coordinator delegating state changes to tracker.
func NewCoordinator(tracker *progress.Tracker) *Coordinator {
	return &Coordinator{tracker: tracker, now: time.Now}
}

// Initialize installs a new session over verses numbered start..end
// (inclusive, 1-based within the surah), replacing any session already
// live. Verse state is created lazily here for verses seen the first time.
func (c *Coordinator) Initialize(ctx context.Context, surahNumber int, surahLabel string, verses []quran.Verse, start, end int) (*Session, error) {
	items := make([]Item, 0, len(verses))
	for _, v := range verses {
		if v.NumberInSurah < start || v.NumberInSurah > end {
			continue
		}
		st, err := c.tracker.Ensure(ctx, v.AyahID(), v.SurahNumber, v.NumberInSurah)
		if err != nil {
			return nil, fmt.Errorf("initialize session: %w", err)
		}
		items = append(items, Item{Verse: v, State: st})
	}

	c.active = &Session{
		ID:          uuid.New().String(),
		SurahNumber: surahNumber,
		SurahLabel:  surahLabel,
		RangeStart:  start,
		RangeEnd:    end,
		Items:       items,
		StartedAt:   c.now(),
	}
	return c.active, nil
}

// Active returns the live session, or nil.
func (c *Coordinator) Active() *Session {
	return c.active
}

// Current returns the item under the cursor, or nil without a session.
func (c *Coordinator) Current() *Item {
	if c.active == nil || len(c.active.Items) == 0 {
		return nil
	}
	return &c.active.Items[c.active.cursor]
}

// Next advances the cursor, clamped at the last item. Probing past the end
// is routine navigation, not an error.
func (c *Coordinator) Next() {
	if c.active == nil {
		return
	}
	if c.active.cursor < len(c.active.Items)-1 {
		c.active.cursor++
	}
}

// Previous moves the cursor back, clamped at zero.
func (c *Coordinator) Previous() {
	if c.active == nil {
		return
	}
	if c.active.cursor > 0 {
		c.active.cursor--
	}
}

// Cursor returns the current item index.
func (c *Coordinator) Cursor() int {
	if c.active == nil {
		return 0
	}
	return c.active.cursor
}

// Progress counts mastered items in the live session.
func (c *Coordinator) Progress() Progress {
	if c.active == nil || len(c.active.Items) == 0 {
		return Progress{}
	}
	p := Progress{Total: len(c.active.Items)}
	for _, it := range c.active.Items {
		if it.State != nil && it.State.Status == progress.StatusMastered {
			p.MasteredCount++
		}
	}
	p.Percentage = 100 * float64(p.MasteredCount) / float64(p.Total)
	return p
}

// Complete stamps the completion time on the live session. The session
// stays installed; the caller decides when to Reset.
func (c *Coordinator) Complete() error {
	if c.active == nil {
		return ErrNoSession
	}
	now := c.now()
	c.active.CompletedAt = &now
	return nil
}

// Reset discards the live session. Persisted per-verse state is untouched.
// Resetting with no session is harmless.
func (c *Coordinator) Reset() {
	c.active = nil
}
