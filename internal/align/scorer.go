// Package align scores a transcribed recitation against the expected verse
// text. It produces two independent views of the same comparison: a numeric
// word error rate from a full edit-distance computation, and a word-by-word
// feedback tape from a greedy left-to-right walk. The two deliberately stay
// separate; the tape is for coarse highlighting and may count operations
// differently than the edit distance does.
package align

import "strings"

// WordStatus classifies a single aligned word.
type WordStatus string

const (
	StatusCorrect   WordStatus = "correct"
	StatusIncorrect WordStatus = "incorrect"
	StatusMissing   WordStatus = "missing"
	StatusExtra     WordStatus = "extra"
)

// WordFeedback is the verdict for one aligned word. Word is the token the
// reciter produced (empty for a missing word); Expected is the reference
// token (empty for an extra word).
type WordFeedback struct {
	Index    int
	Word     string
	Expected string
	Status   WordStatus
}

// Result is the outcome of scoring one recitation.
type Result struct {
	// ErrorRate is the word error rate: edit distance over reference
	// length. It is not clamped and exceeds 1.0 when the hypothesis
	// contains more errors than the reference has words.
	ErrorRate float64
	Feedback  []WordFeedback
}

// Score compares a hypothesis transcript against the expected text.
// Both texts are split on whitespace; no case folding or diacritic
// normalization happens here (see quran.NormalizeArabic).
// An empty expected text scores 0 with no feedback.
func Score(expected, hypothesis string) Result {
	ref := strings.Fields(expected)
	hyp := strings.Fields(hypothesis)
	return Result{
		ErrorRate: errorRate(ref, hyp),
		Feedback:  feedback(ref, hyp),
	}
}

// AccuracyPercent converts an error rate to a 0-100 accuracy figure.
// Unlike the raw error rate this is clamped, so grossly wrong hypotheses
// bottom out at 0 rather than going negative.
func AccuracyPercent(errorRate float64) float64 {
	acc := (1 - errorRate) * 100
	if acc < 0 {
		return 0
	}
	if acc > 100 {
		return 100
	}
	return acc
}

// errorRate computes the classic word-level Levenshtein distance between
// reference and hypothesis, normalized by reference length.
func errorRate(ref, hyp []string) float64 {
	m, n := len(ref), len(hyp)
	if m == 0 {
		return 0
	}

	// dp[i][j] = edit distance between ref[:i] and hyp[:j].
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if ref[i-1] == hyp[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j-1], min(prev[j], curr[j-1]))
		}
		prev, curr = curr, prev
	}
	return float64(prev[n]) / float64(m)
}

// feedback walks both word sequences left to right: equal words advance both
// pointers, a trailing reference surplus is missing, a trailing hypothesis
// surplus is extra, and any other mismatch is marked incorrect with both
// pointers advancing. This greedy walk misreads a pure insertion or deletion
// in the middle of the text as a run of substitutions; callers needing the
// DP-optimal alignment must not lean on this tape.
func feedback(ref, hyp []string) []WordFeedback {
	if len(ref) == 0 {
		return nil
	}

	var out []WordFeedback
	i, j := 0, 0
	for i < len(ref) || j < len(hyp) {
		switch {
		case i >= len(ref):
			out = append(out, WordFeedback{
				Index:  j,
				Word:   hyp[j],
				Status: StatusExtra,
			})
			j++
		case j >= len(hyp):
			out = append(out, WordFeedback{
				Index:    i,
				Expected: ref[i],
				Status:   StatusMissing,
			})
			i++
		case ref[i] == hyp[j]:
			out = append(out, WordFeedback{
				Index:    i,
				Word:     hyp[j],
				Expected: ref[i],
				Status:   StatusCorrect,
			})
			i++
			j++
		default:
			out = append(out, WordFeedback{
				Index:    i,
				Word:     hyp[j],
				Expected: ref[i],
				Status:   StatusIncorrect,
			})
			i++
			j++
		}
	}
	return out
}
