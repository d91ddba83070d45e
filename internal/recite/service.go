// Package recite glues the pipeline together: normalize both texts,
// score the transcript against the verse, apply the outcome to the
// verse state machine, and credit the learner's profile.
package recite

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamdan/hifzi/internal/align"
	"github.com/hamdan/hifzi/internal/learner"
	"github.com/hamdan/hifzi/internal/progress"
	"github.com/hamdan/hifzi/internal/quran"
	"github.com/hamdan/hifzi/internal/reward"
)

// Report is the outcome of one scored recitation.
type Report struct {
	VerseID       string
	Accuracy      float64
	ErrorRate     float64
	Feedback      []align.WordFeedback
	Passed        bool
	XPEarned      int
	GoalCompleted bool
}

// Service scores recitations and applies their consequences.
type Service struct {
	tracker       *progress.Tracker
	profiles      learner.Repo
	passThreshold float64
	log           *zap.Logger

	now func() time.Time
}

// NewService wires the scoring pipeline. passThreshold is the minimum
// accuracy percentage that counts as a passed recall test.
func NewService(tracker *progress.Tracker, profiles learner.Repo, passThreshold float64, log *zap.Logger) *Service {
	return &Service{
		tracker:       tracker,
		profiles:      profiles,
		passThreshold: passThreshold,
		log:           log,
		now:           time.Now,
	}
}

// ScoreOnly scores a transcript against a verse without touching any
// state. Used for practice drills and previews.
func (s *Service) ScoreOnly(verse quran.Verse, transcript string) Report {
	expected := quran.NormalizeArabic(verse.Text)
	hypothesis := quran.NormalizeArabic(transcript)

	result := align.Score(expected, hypothesis)
	accuracy := align.AccuracyPercent(result.ErrorRate)

	return Report{
		VerseID:   verse.ID,
		Accuracy:  accuracy,
		ErrorRate: result.ErrorRate,
		Feedback:  result.Feedback,
		Passed:    accuracy >= s.passThreshold,
	}
}

// Submit scores a recitation as a recall test: the verse moves through
// the state machine, XP is earned and credited to the profile, and a
// first-time mastery bumps the memorized counter. duration is how long
// the recitation took; it feeds the XP duration factor.
func (s *Service) Submit(ctx context.Context, verse quran.Verse, transcript string, duration time.Duration) (*Report, error) {
	report := s.ScoreOnly(verse, transcript)
	now := s.now()

	if _, err := s.tracker.Ensure(ctx, verse.ID, verse.SurahNumber, verse.NumberInSurah); err != nil {
		return nil, fmt.Errorf("track verse: %w", err)
	}

	before, err := s.tracker.Get(ctx, verse.ID)
	if err != nil {
		return nil, err
	}
	wasMastered := before.MasteredAt != nil

	if err := s.tracker.StartTest(ctx, verse.ID); err != nil {
		return nil, err
	}
	if err := s.tracker.SubmitTestResult(ctx, progress.TestResult{
		VerseID:     verse.ID,
		Passed:      report.Passed,
		AttemptedAt: now,
	}); err != nil {
		return nil, err
	}

	report.XPEarned = reward.RecitationXP(report.Accuracy, duration)

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		profile = learner.NewProfile()
	}
	profile.ApplyXP(report.XPEarned, now)

	after, err := s.tracker.Get(ctx, verse.ID)
	if err != nil {
		return nil, err
	}
	if !wasMastered && after.MasteredAt != nil {
		profile.RecordMemorized()
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	report.GoalCompleted = profile.GoalMet(now)

	s.log.Info("recitation scored",
		zap.String("verse", verse.ID),
		zap.Float64("accuracy", report.Accuracy),
		zap.Bool("passed", report.Passed),
		zap.Int("xp", report.XPEarned))

	return &report, nil
}
