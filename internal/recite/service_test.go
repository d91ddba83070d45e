package recite

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamdan/hifzi/internal/progress"
	"github.com/hamdan/hifzi/internal/quran"
	"github.com/hamdan/hifzi/internal/store"
)

var testVerse = quran.Verse{
	ID:            "112001",
	SurahNumber:   112,
	NumberInSurah: 1,
	Text:          "قُلْ هُوَ ٱللَّهُ أَحَدٌ",
}

func newTestService(t *testing.T) (*Service, *progress.Tracker, *store.MemoryLearnerRepo) {
	t.Helper()
	tracker := progress.NewTracker(store.NewMemoryVerseRepo())
	profiles := store.NewMemoryLearnerRepo()
	svc := NewService(tracker, profiles, 80, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, tracker, profiles
}

func TestScoreOnly_PerfectAfterNormalization(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Transcript without diacritics matches the vocalized verse text.
	report := svc.ScoreOnly(testVerse, "قل هو الله احد")
	if report.ErrorRate != 0 {
		t.Errorf("ErrorRate = %v, want 0", report.ErrorRate)
	}
	if report.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100", report.Accuracy)
	}
	if !report.Passed {
		t.Error("perfect recitation must pass")
	}
}

func TestScoreOnly_BelowThresholdFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Two words wrong out of four: 50% accuracy.
	report := svc.ScoreOnly(testVerse, "قل هو خطأ خطأ")
	if report.Passed {
		t.Errorf("accuracy %v must not pass at threshold 80", report.Accuracy)
	}
}

func TestSubmit_PassMastersVerse(t *testing.T) {
	svc, tracker, profiles := newTestService(t)
	ctx := context.Background()

	report, err := svc.Submit(ctx, testVerse, "قل هو الله احد", time.Minute)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !report.Passed {
		t.Fatal("expected pass")
	}

	// 100% accuracy, 1 minute: 10 * 3.0 * 1.5 = 45 XP.
	if report.XPEarned != 45 {
		t.Errorf("XPEarned = %d, want 45", report.XPEarned)
	}

	st, err := tracker.Get(ctx, testVerse.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if st.Status != progress.StatusMastered {
		t.Errorf("Status = %s, want mastered", st.Status)
	}
	if st.MasteredAt == nil {
		t.Error("MasteredAt not set after passed test")
	}

	p, err := profiles.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.TotalXP != 45 {
		t.Errorf("TotalXP = %d, want 45", p.TotalXP)
	}
	if p.VersesMemorized != 1 {
		t.Errorf("VersesMemorized = %d, want 1", p.VersesMemorized)
	}
}

func TestSubmit_FailDropsToLearning(t *testing.T) {
	svc, tracker, profiles := newTestService(t)
	ctx := context.Background()

	report, err := svc.Submit(ctx, testVerse, "كلام مختلف تماما هنا", time.Minute)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if report.Passed {
		t.Fatal("expected fail")
	}

	st, _ := tracker.Get(ctx, testVerse.ID)
	if st.Status != progress.StatusLearning {
		t.Errorf("Status = %s, want learning", st.Status)
	}
	if st.MasteredAt != nil {
		t.Error("MasteredAt set after failed test")
	}

	// A failed recitation still earns the floor XP.
	p, _ := profiles.Load(ctx)
	if p.TotalXP != report.XPEarned {
		t.Errorf("TotalXP = %d, want %d", p.TotalXP, report.XPEarned)
	}
	if p.VersesMemorized != 0 {
		t.Errorf("VersesMemorized = %d, want 0", p.VersesMemorized)
	}
}

func TestSubmit_MemorizedCountsOnce(t *testing.T) {
	svc, _, profiles := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, testVerse, "قل هو الله احد", time.Minute); err != nil {
			t.Fatalf("Submit() #%d error = %v", i, err)
		}
	}

	p, _ := profiles.Load(ctx)
	if p.VersesMemorized != 1 {
		t.Errorf("VersesMemorized = %d, want 1", p.VersesMemorized)
	}
}

func TestSubmit_GoalCompleted(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// 45 XP per perfect one-minute recitation; goal of 50 falls on the second.
	first, err := svc.Submit(ctx, testVerse, "قل هو الله احد", time.Minute)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if first.GoalCompleted {
		t.Error("goal met at 45/50, want not met")
	}

	second, err := svc.Submit(ctx, testVerse, "قل هو الله احد", time.Minute)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !second.GoalCompleted {
		t.Error("goal not met at 90/50")
	}
}
