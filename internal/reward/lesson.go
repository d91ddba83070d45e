// Package reward turns session outcomes into experience points: lesson
// completion rewards with combo and speed bonuses, and per-recitation
// awards tiered by accuracy.
package reward

import (
	"errors"
	"math"
	"time"
)

// Reward tuning constants. The bonus order in Complete is load-bearing:
// the combo multiplier applies to the XP accumulated so far, not to the
// per-correct base alone.
const (
	XPPerCorrect      = 10
	PerfectBonus      = 50
	SpeedBonus        = 25
	ComboStep         = 0.5
	ComboCap          = 5.0
	SpeedAvgThreshold = 30 * time.Second // average per exercise
)

// ErrNoLesson is returned when recording or completing without a lesson
// loaded. A lesson never started is not the same as a lesson finished with
// zero correct answers, so this fails loudly.
var ErrNoLesson = errors.New("no lesson in progress")

// Lesson declares a fixed exercise set and its base completion reward.
type Lesson struct {
	ID             string
	TotalExercises int
	BaseReward     int
}

// LessonResult is the terminal output of one completed lesson attempt.
type LessonResult struct {
	LessonID    string
	Correct     int
	Incorrect   int
	MaxCombo    int
	Accuracy    float64
	Stars       int
	XP          int
	Elapsed     time.Duration
	CompletedAt time.Time
}

// Calculator accumulates exercise outcomes for the lesson in progress.
type Calculator struct {
	lesson    *Lesson
	startedAt time.Time

	correct   int
	incorrect int
	combo     int
	maxCombo  int

	now func() time.Time
}

// NewCalculator creates an empty calculator; call Start before recording.
func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// Start loads a lesson and resets all running counters.
func (c *Calculator) Start(lesson Lesson) {
	c.lesson = &lesson
	c.startedAt = c.now()
	c.correct, c.incorrect = 0, 0
	c.combo, c.maxCombo = 0, 0
}

// Record registers one exercise outcome. Any incorrect answer resets the
// combo; the high-water mark survives.
func (c *Calculator) Record(correct bool) error {
	if c.lesson == nil {
		return ErrNoLesson
	}
	if correct {
		c.correct++
		c.combo++
		if c.combo > c.maxCombo {
			c.maxCombo = c.combo
		}
	} else {
		c.incorrect++
		c.combo = 0
	}
	return nil
}

// Combo returns the current consecutive-correct counter.
func (c *Calculator) Combo() int { return c.combo }

// Complete closes the lesson attempt and computes the final result.
// The XP bonuses are additive in a fixed order: per-correct base, combo
// multiplier on the accumulated total, perfect-lesson bonus, speed bonus,
// then the lesson's declared base reward.
func (c *Calculator) Complete() (*LessonResult, error) {
	if c.lesson == nil {
		return nil, ErrNoLesson
	}

	now := c.now()
	elapsed := now.Sub(c.startedAt)
	total := c.lesson.TotalExercises

	var accuracy float64
	if total > 0 {
		accuracy = 100 * float64(c.correct) / float64(total)
	}

	xp := c.correct * XPPerCorrect
	multiplier := math.Min(float64(c.maxCombo)*ComboStep, ComboCap)
	xp += int(math.Floor(float64(xp) * multiplier))
	if c.incorrect == 0 {
		xp += PerfectBonus
	}
	if total > 0 && elapsed.Milliseconds()/int64(total) < SpeedAvgThreshold.Milliseconds() {
		xp += SpeedBonus
	}
	xp += c.lesson.BaseReward

	result := &LessonResult{
		LessonID:    c.lesson.ID,
		Correct:     c.correct,
		Incorrect:   c.incorrect,
		MaxCombo:    c.maxCombo,
		Accuracy:    accuracy,
		Stars:       stars(accuracy),
		XP:          xp,
		Elapsed:     elapsed,
		CompletedAt: now,
	}
	c.lesson = nil
	return result, nil
}

// stars maps accuracy to a 0-3 star rating.
func stars(accuracy float64) int {
	switch {
	case accuracy >= 90:
		return 3
	case accuracy >= 70:
		return 2
	case accuracy >= 50:
		return 1
	default:
		return 0
	}
}
