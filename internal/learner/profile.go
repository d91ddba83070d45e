// Package learner holds the account-wide gamification profile: level,
// total and daily XP, the calendar practice streak, and hearts. It sits
// above the per-verse tracker; anything that awards XP flows through here.
package learner

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultDailyGoal  = 50
	DefaultMaxHearts  = 5
	DefaultFreezes    = 2
	HeartRegenPeriod  = 30 * time.Minute
	xpPerLevelStep    = 100 // level n needs n*100 XP beyond level n-1
)

var (
	ErrNoHearts  = errors.New("no hearts available")
	ErrNoFreezes = errors.New("no streak freezes available")
)

// Repo persists the single learner profile.
type Repo interface {
	// Load returns the stored profile, or nil when none exists yet.
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// Profile is the learner's account-wide progress record.
type Profile struct {
	Level    int
	TotalXP  int
	WeeklyXP int

	DailyXP   int
	DailyGoal int
	DailyDate time.Time // calendar day DailyXP belongs to

	CurrentStreak    int
	LongestStreak    int
	StreakFreezes    int
	LastPracticeDate *time.Time

	Hearts        int
	MaxHearts     int
	HeartsRegenAt *time.Time

	LessonsCompleted int
	VersesMemorized  int
	PerfectLessons   int
}

// NewProfile returns the starting profile for a fresh account.
func NewProfile() *Profile {
	return &Profile{
		Level:         1,
		DailyGoal:     DefaultDailyGoal,
		StreakFreezes: DefaultFreezes,
		Hearts:        DefaultMaxHearts,
		MaxHearts:     DefaultMaxHearts,
	}
}

// ApplyXP credits an award earned at the given time: totals and the daily
// counter move, the practice streak updates against the calendar, and the
// level is re-derived from total XP.
func (p *Profile) ApplyXP(xp int, at time.Time) {
	day := dateOnly(at)

	if !sameDay(p.DailyDate, day) {
		p.DailyXP = 0
		p.DailyDate = day
	}
	p.DailyXP += xp
	p.TotalXP += xp
	p.WeeklyXP += xp

	p.recordPracticeDay(day)
	p.Level = LevelForXP(p.TotalXP)
}

// GoalMet reports whether today's XP goal is reached.
func (p *Profile) GoalMet(at time.Time) bool {
	return sameDay(p.DailyDate, dateOnly(at)) && p.DailyXP >= p.DailyGoal
}

// recordPracticeDay advances the calendar streak: consecutive days grow it,
// a same-day repeat leaves it alone, and a gap resets it to one.
func (p *Profile) recordPracticeDay(day time.Time) {
	switch {
	case p.LastPracticeDate == nil:
		p.CurrentStreak = 1
	case sameDay(*p.LastPracticeDate, day):
		// Already counted today.
	case sameDay(p.LastPracticeDate.AddDate(0, 0, 1), day):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	d := day
	p.LastPracticeDate = &d
}

// UseStreakFreeze spends a freeze to count the given day as practiced,
// protecting the streak without any XP earned.
func (p *Profile) UseStreakFreeze(at time.Time) error {
	if p.StreakFreezes <= 0 {
		return ErrNoFreezes
	}
	p.StreakFreezes--
	p.recordPracticeDay(dateOnly(at))
	return nil
}

// UseHeart spends a life. The first heart lost starts the regen timer.
func (p *Profile) UseHeart(at time.Time) error {
	p.RegenHearts(at)
	if p.Hearts <= 0 {
		return ErrNoHearts
	}
	p.Hearts--
	if p.Hearts < p.MaxHearts && p.HeartsRegenAt == nil {
		t := at.Add(HeartRegenPeriod)
		p.HeartsRegenAt = &t
	}
	return nil
}

// RegenHearts restores any hearts whose regen time has passed.
func (p *Profile) RegenHearts(at time.Time) {
	for p.HeartsRegenAt != nil && !at.Before(*p.HeartsRegenAt) && p.Hearts < p.MaxHearts {
		p.Hearts++
		if p.Hearts < p.MaxHearts {
			t := p.HeartsRegenAt.Add(HeartRegenPeriod)
			p.HeartsRegenAt = &t
		} else {
			p.HeartsRegenAt = nil
		}
	}
	if p.Hearts >= p.MaxHearts {
		p.HeartsRegenAt = nil
	}
}

// RecordLesson folds a completed lesson into the profile.
func (p *Profile) RecordLesson(xp int, perfect bool, at time.Time) {
	p.LessonsCompleted++
	if perfect {
		p.PerfectLessons++
	}
	p.ApplyXP(xp, at)
}

// RecordMemorized counts a verse reaching mastery for the first time.
func (p *Profile) RecordMemorized() {
	p.VersesMemorized++
}

// LevelForXP derives the level from total XP: each level n costs n*100 XP
// on top of the previous one, so early levels come fast.
func LevelForXP(totalXP int) int {
	level := 1
	need := xpPerLevelStep
	for totalXP >= need {
		totalXP -= need
		level++
		need = level * xpPerLevelStep
	}
	return level
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
