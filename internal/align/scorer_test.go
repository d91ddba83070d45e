package align

import (
	"math"
	"testing"
)

func statuses(fb []WordFeedback) []WordStatus {
	out := make([]WordStatus, len(fb))
	for i, f := range fb {
		out[i] = f.Status
	}
	return out
}

func assertStatuses(t *testing.T, got []WordFeedback, want []WordStatus) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("feedback length = %d, want %d (%v)", len(got), len(want), statuses(got))
	}
	for i, w := range want {
		if got[i].Status != w {
			t.Errorf("feedback[%d] = %s, want %s", i, got[i].Status, w)
		}
	}
}

func TestScore_EmptyExpected(t *testing.T) {
	res := Score("", "anything at all")
	if res.ErrorRate != 0 {
		t.Errorf("ErrorRate = %v, want 0", res.ErrorRate)
	}
	if len(res.Feedback) != 0 {
		t.Errorf("feedback length = %d, want 0", len(res.Feedback))
	}
}

func TestScore_Identical(t *testing.T) {
	res := Score("a b c", "a b c")
	if res.ErrorRate != 0 {
		t.Errorf("ErrorRate = %v, want 0", res.ErrorRate)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusCorrect, StatusCorrect, StatusCorrect})
}

func TestScore_Substitution(t *testing.T) {
	res := Score("a b c", "a x c")
	if want := 1.0 / 3.0; math.Abs(res.ErrorRate-want) > 1e-9 {
		t.Errorf("ErrorRate = %v, want %v", res.ErrorRate, want)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusCorrect, StatusIncorrect, StatusCorrect})
	if res.Feedback[1].Word != "x" || res.Feedback[1].Expected != "b" {
		t.Errorf("feedback[1] = %+v, want word x / expected b", res.Feedback[1])
	}
}

func TestScore_TrailingDeletion(t *testing.T) {
	res := Score("a b c", "a b")
	if want := 1.0 / 3.0; math.Abs(res.ErrorRate-want) > 1e-9 {
		t.Errorf("ErrorRate = %v, want %v", res.ErrorRate, want)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusCorrect, StatusCorrect, StatusMissing})
	if res.Feedback[2].Expected != "c" || res.Feedback[2].Word != "" {
		t.Errorf("missing entry = %+v, want expected c / empty word", res.Feedback[2])
	}
}

func TestScore_TrailingInsertion(t *testing.T) {
	res := Score("a b", "a b c d")
	if want := 1.0; math.Abs(res.ErrorRate-want) > 1e-9 {
		t.Errorf("ErrorRate = %v, want %v", res.ErrorRate, want)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusCorrect, StatusCorrect, StatusExtra, StatusExtra})
}

func TestScore_RateCanExceedOne(t *testing.T) {
	res := Score("a", "x y z")
	if res.ErrorRate <= 1 {
		t.Errorf("ErrorRate = %v, want > 1 for a hopeless hypothesis", res.ErrorRate)
	}
}

func TestScore_EmptyHypothesis(t *testing.T) {
	res := Score("a b c", "")
	if want := 1.0; math.Abs(res.ErrorRate-want) > 1e-9 {
		t.Errorf("ErrorRate = %v, want %v", res.ErrorRate, want)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusMissing, StatusMissing, StatusMissing})
}

// The greedy tape intentionally disagrees with the DP distance on a mid-text
// deletion: the rate counts one deletion, the tape reports substitutions.
func TestScore_GreedyTapeDivergesFromRate(t *testing.T) {
	res := Score("a b c", "a c")
	if want := 1.0 / 3.0; math.Abs(res.ErrorRate-want) > 1e-9 {
		t.Errorf("ErrorRate = %v, want %v", res.ErrorRate, want)
	}
	assertStatuses(t, res.Feedback, []WordStatus{StatusCorrect, StatusIncorrect, StatusMissing})
}

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{0, 100},
		{0.25, 75},
		{1, 0},
		{1.5, 0},  // clamped
		{-0.1, 100}, // clamped
	}
	for _, tt := range tests {
		if got := AccuracyPercent(tt.rate); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AccuracyPercent(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
