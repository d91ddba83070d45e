package progress

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrVerseNotTracked is returned when an operation addresses a verse that
// has never been through session initialization.
var ErrVerseNotTracked = errors.New("verse is not tracked")

// StateRepo is the keyed persistence surface for verse learning state.
// Get returns (nil, nil) for an unknown verse. Implementations live in
// internal/store; the tracker never retries a failed call.
type StateRepo interface {
	Get(ctx context.Context, verseID string) (*VerseState, error)
	Put(ctx context.Context, state *VerseState) error
	All(ctx context.Context) ([]*VerseState, error)
}

// TestResult reports the outcome of a recall test on one verse.
type TestResult struct {
	VerseID     string
	Passed      bool
	AttemptedAt time.Time
}

// Tracker owns the per-verse state machine. Loaded states are cached in
// memory and written through to the repo on every mutation, so pointers
// handed out by Ensure/Get observe later mutations (the session layer
// relies on this to show live progress).
//
// The tracker is not safe for concurrent use; a multi-threaded host must
// serialize access to it.
type Tracker struct {
	repo   StateRepo
	states map[string]*VerseState

	now func() time.Time
}

// NewTracker creates a tracker backed by the given repo.
func NewTracker(repo StateRepo) *Tracker {
	return &Tracker{
		repo:   repo,
		states: make(map[string]*VerseState),
		now:    time.Now,
	}
}

// Get returns the tracked state for a verse, or nil if none exists.
func (t *Tracker) Get(ctx context.Context, verseID string) (*VerseState, error) {
	if st, ok := t.states[verseID]; ok {
		return st, nil
	}
	st, err := t.repo.Get(ctx, verseID)
	if err != nil {
		return nil, fmt.Errorf("load verse state: %w", err)
	}
	if st == nil {
		return nil, nil
	}
	t.states[verseID] = st
	return st, nil
}

// Ensure returns the tracked state for a verse, creating and persisting the
// default state on first sight. Session initialization calls this for every
// verse in range.
func (t *Tracker) Ensure(ctx context.Context, verseID string, surah, number int) (*VerseState, error) {
	st, err := t.Get(ctx, verseID)
	if err != nil {
		return nil, err
	}
	if st != nil {
		return st, nil
	}
	st = NewVerseState(verseID, surah, number)
	if err := t.repo.Put(ctx, st); err != nil {
		return nil, fmt.Errorf("create verse state: %w", err)
	}
	t.states[verseID] = st
	return st, nil
}

// MarkRead records one re-read of a verse: the read count goes up, a new
// verse moves to learning, and the practice timestamp advances. Untracked
// verses are ignored without error; reading ahead of session setup is not
// worth reporting.
func (t *Tracker) MarkRead(ctx context.Context, verseID string) error {
	st, err := t.Get(ctx, verseID)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	st.ReadCount++
	if st.Status == StatusNew {
		st.Status = StatusLearning
	}
	now := t.now()
	st.LastPracticedAt = &now
	return t.put(ctx, st)
}

// SetConfidence stores a self-report and re-derives the status through
// NextStatus.
func (t *Tracker) SetConfidence(ctx context.Context, verseID string, level Confidence) error {
	st, err := t.Get(ctx, verseID)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("set confidence %s: %w", verseID, ErrVerseNotTracked)
	}
	st.Confidence = level
	st.Status = NextStatus(st.Status, level, nil)
	now := t.now()
	st.LastPracticedAt = &now
	return t.put(ctx, st)
}

// StartTest forces a verse into reviewing and counts the attempt.
func (t *Tracker) StartTest(ctx context.Context, verseID string) error {
	st, err := t.Get(ctx, verseID)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("start test %s: %w", verseID, ErrVerseNotTracked)
	}
	st.Status = StatusReviewing
	st.TestAttempts++
	return t.put(ctx, st)
}

// SubmitTestResult applies a recall test outcome. A pass records the recall,
// masters the verse (the mastery timestamp is sticky: first pass only) and
// resets confidence to confident; a fail drops the verse back to learning
// with confidence cleared.
func (t *Tracker) SubmitTestResult(ctx context.Context, result TestResult) error {
	st, err := t.Get(ctx, result.VerseID)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("submit test result %s: %w", result.VerseID, ErrVerseNotTracked)
	}

	passed := result.Passed
	if passed {
		st.SuccessfulRecalls++
		// A result without a preceding StartTest still counts as an
		// attempt, keeping recalls <= attempts.
		if st.SuccessfulRecalls > st.TestAttempts {
			st.TestAttempts = st.SuccessfulRecalls
		}
		st.Confidence = Confident
		if st.MasteredAt == nil {
			now := t.now()
			st.MasteredAt = &now
		}
	} else {
		st.Confidence = NotConfident
	}
	st.Status = NextStatus(st.Status, st.Confidence, &passed)

	at := result.AttemptedAt
	if at.IsZero() {
		at = t.now()
	}
	st.LastPracticedAt = &at
	return t.put(ctx, st)
}

// All returns every tracked state, loading the full set from the repo.
func (t *Tracker) All(ctx context.Context) ([]*VerseState, error) {
	states, err := t.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load verse states: %w", err)
	}
	// Prefer cached pointers so callers holding them see one instance.
	out := make([]*VerseState, 0, len(states))
	for _, st := range states {
		if cached, ok := t.states[st.VerseID]; ok {
			out = append(out, cached)
			continue
		}
		t.states[st.VerseID] = st
		out = append(out, st)
	}
	return out, nil
}

func (t *Tracker) put(ctx context.Context, st *VerseState) error {
	if err := t.repo.Put(ctx, st); err != nil {
		return fmt.Errorf("persist verse state: %w", err)
	}
	return nil
}
