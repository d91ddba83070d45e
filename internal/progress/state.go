package progress

import "time"

// Status is a verse's position in the memorization lifecycle.
type Status string

const (
	StatusNew       Status = "new"
	StatusLearning  Status = "learning"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// Confidence is the learner's last self-reported comfort with a verse.
type Confidence string

const (
	NotConfident      Confidence = "not_confident"
	SomewhatConfident Confidence = "somewhat_confident"
	Confident         Confidence = "confident"
)

// VerseState tracks one verse's progress across sessions. Identity fields
// are immutable once created; everything else moves through the Tracker.
type VerseState struct {
	VerseID       string
	SurahNumber   int
	NumberInSurah int

	Status     Status
	Confidence Confidence

	ReadCount         int
	TestAttempts      int
	SuccessfulRecalls int

	LastPracticedAt *time.Time
	// MasteredAt is set once, on first mastery, and never cleared.
	MasteredAt *time.Time
}

// NewVerseState returns the default state for a verse seen for the first time.
func NewVerseState(verseID string, surah, number int) *VerseState {
	return &VerseState{
		VerseID:       verseID,
		SurahNumber:   surah,
		NumberInSurah: number,
		Status:        StatusNew,
		Confidence:    NotConfident,
	}
}

// Accuracy returns the recall test success ratio, 0 with no attempts.
func (s *VerseState) Accuracy() float64 {
	if s.TestAttempts == 0 {
		return 0
	}
	return float64(s.SuccessfulRecalls) / float64(s.TestAttempts)
}

// NextStatus is the single source of truth for the verse state machine.
// testPassed is nil when no test result is being reported.
//
// Precedence: a test outcome wins over everything; full confidence promotes
// to reviewing (the verse becomes eligible for testing); a first interaction
// moves new to learning; otherwise the status is unchanged.
func NextStatus(current Status, confidence Confidence, testPassed *bool) Status {
	switch {
	case testPassed != nil && *testPassed:
		return StatusMastered
	case testPassed != nil:
		return StatusLearning
	case confidence == Confident:
		return StatusReviewing
	case current == StatusNew:
		return StatusLearning
	default:
		return current
	}
}
