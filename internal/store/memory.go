package store

import (
	"context"
	"sync"

	"github.com/hamdan/hifzi/internal/learner"
	"github.com/hamdan/hifzi/internal/progress"
)

// MemoryVerseRepo is an in-memory progress.StateRepo. It copies states on
// the way in and out so callers can't alias its internals.
type MemoryVerseRepo struct {
	mu     sync.Mutex
	states map[string]*progress.VerseState
}

// NewMemoryVerseRepo creates an empty in-memory verse state repo.
func NewMemoryVerseRepo() *MemoryVerseRepo {
	return &MemoryVerseRepo{states: make(map[string]*progress.VerseState)}
}

func (m *MemoryVerseRepo) Get(_ context.Context, verseID string) (*progress.VerseState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[verseID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *MemoryVerseRepo) Put(_ context.Context, st *progress.VerseState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.states[st.VerseID] = &cp
	return nil
}

func (m *MemoryVerseRepo) All(_ context.Context) ([]*progress.VerseState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*progress.VerseState, 0, len(m.states))
	for _, st := range m.states {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

// MemoryLearnerRepo is an in-memory learner.Repo.
type MemoryLearnerRepo struct {
	mu      sync.Mutex
	profile *learner.Profile
}

// NewMemoryLearnerRepo creates an empty in-memory learner repo.
func NewMemoryLearnerRepo() *MemoryLearnerRepo {
	return &MemoryLearnerRepo{}
}

func (m *MemoryLearnerRepo) Load(_ context.Context) (*learner.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil, nil
	}
	cp := *m.profile
	return &cp, nil
}

func (m *MemoryLearnerRepo) Save(_ context.Context, p *learner.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profile = &cp
	return nil
}
